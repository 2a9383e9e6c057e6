package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS beatmaps (
	path          TEXT PRIMARY KEY,
	beatmap_id    INTEGER NOT NULL,
	beatmapset_id INTEGER NOT NULL,
	artist        TEXT NOT NULL,
	title         TEXT NOT NULL,
	version       TEXT NOT NULL,
	mode          INTEGER NOT NULL,
	summary       TEXT NOT NULL,
	indexed_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS beatmaps_set ON beatmaps (beatmapset_id);
CREATE TABLE IF NOT EXISTS failures (
	path      TEXT PRIMARY KEY,
	reason    TEXT NOT NULL,
	failed_at TIMESTAMP NOT NULL
);
`

// Store is a sqlite index of decoded beatmaps and of files that failed.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveSummary upserts the summary and clears any earlier failure for its path.
func (s *Store) SaveSummary(ctx context.Context, sum Summary) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("marshal summary %s: %w", sum.Path, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO beatmaps (path, beatmap_id, beatmapset_id, artist, title, version, mode, summary, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			beatmap_id = excluded.beatmap_id,
			beatmapset_id = excluded.beatmapset_id,
			artist = excluded.artist,
			title = excluded.title,
			version = excluded.version,
			mode = excluded.mode,
			summary = excluded.summary,
			indexed_at = excluded.indexed_at`,
		sum.Path, sum.ID, sum.BeatmapsetID, sum.Artist, sum.Title, sum.Version, sum.ModeInt, string(data), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("save summary %s: %w", sum.Path, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM failures WHERE path = ?`, sum.Path); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) SaveFailure(ctx context.Context, path, reason string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO failures (path, reason, failed_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET reason = excluded.reason, failed_at = excluded.failed_at`,
		path, reason, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save failure %s: %w", path, err)
	}
	return nil
}

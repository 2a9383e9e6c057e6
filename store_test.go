package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSummaryUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sum := Summarize("a.osu", decodeTestMap(t, testMap))
	require.NoError(t, s.SaveSummary(ctx, sum))

	sum.Version = "Insane"
	require.NoError(t, s.SaveSummary(ctx, sum))

	got, ok, err := s.summary(ctx, "a.osu")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Insane", got.Version)
	assert.Equal(t, 22, got.BeatmapsetID)
	assert.Equal(t, sum.CountSliders, got.CountSliders)

	paths, err := s.setPaths(ctx, 22)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.osu"}, paths)
}

func TestStoreMissingSummary(t *testing.T) {
	_, ok, err := openTestStore(t).summary(context.Background(), "none.osu")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreFailureClearedBySummary(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveFailure(ctx, "a.osu", "first"))
	require.NoError(t, s.SaveFailure(ctx, "a.osu", "second"))
	reason, ok, err := s.failure(ctx, "a.osu")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", reason)

	require.NoError(t, s.SaveSummary(ctx, Summarize("a.osu", decodeTestMap(t, testMap))))
	_, ok, err = s.failure(ctx, "a.osu")
	require.NoError(t, err)
	assert.False(t, ok)
}

// summary loads a stored summary by path; ok is false when none exists.
func (s *Store) summary(ctx context.Context, path string) (sum Summary, ok bool, err error) {
	var data string
	err = s.db.QueryRowContext(ctx, `SELECT summary FROM beatmaps WHERE path = ?`, path).Scan(&data)
	if err == sql.ErrNoRows {
		return Summary{}, false, nil
	}
	if err != nil {
		return Summary{}, false, err
	}
	if err := json.Unmarshal([]byte(data), &sum); err != nil {
		return Summary{}, false, fmt.Errorf("decode summary %s: %w", path, err)
	}
	return sum, true, nil
}

// setPaths lists indexed paths of a beatmap set.
func (s *Store) setPaths(ctx context.Context, beatmapsetID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM beatmaps WHERE beatmapset_id = ? ORDER BY path`, beatmapsetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *Store) failure(ctx context.Context, path string) (string, bool, error) {
	var reason string
	err := s.db.QueryRowContext(ctx, `SELECT reason FROM failures WHERE path = ?`, path).Scan(&reason)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	return reason, err == nil, err
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

// run decodes every source named by args and returns the process exit code:
// 0 when all decoded, 1 when any failed, 2 on usage or setup errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log := newLogger(stderr, cfg.Level())

	if len(cfg.Paths) == 0 {
		log.Error().Msg("no paths given")
		return 2
	}
	paths, err := CollectPaths(cfg.Paths)
	if err != nil {
		log.Error().Err(err).Msg("collecting paths")
		return 2
	}

	var store *Store
	if cfg.DB != "" {
		store, err = OpenStore(cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("opening index")
			return 2
		}
		defer store.Close()
	}

	log.Debug().Int("files", len(paths)).Int("workers", cfg.Workers).Msg("decoding")
	results, err := DecodeAll(ctx, paths, cfg.Workers, log, cfg.DecodeOptions()...)
	if err != nil {
		log.Error().Err(err).Msg("interrupted")
		return 1
	}

	enc := json.NewEncoder(stdout)
	if cfg.Pretty {
		enc.SetIndent("", "\t")
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			Fail(ctx, store, log, r.Name, r.Err)
			continue
		}
		sum := Summarize(r.Name, r.Beatmap)
		if err := enc.Encode(sum); err != nil {
			log.Error().Err(err).Msg("writing summary")
			return 1
		}
		if store != nil {
			if err := store.SaveSummary(ctx, sum); err != nil {
				failed++
				log.Error().Err(err).Str("source", r.Name).Msg("indexing")
			}
		}
	}

	log.Info().Int("decoded", len(results)-failed).Int("failed", failed).Msg("done")
	if failed > 0 {
		return 1
	}
	return 0
}

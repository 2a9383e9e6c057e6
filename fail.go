package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"osubeatmap/dotosu"
)

// Fail logs a source that could not be decoded and, when an index is open,
// records the reason under its name.
func Fail(ctx context.Context, store *Store, log zerolog.Logger, name string, reason error) {
	ev := log.Error().Str("source", name).Err(reason)
	var le *dotosu.LineError
	if errors.As(reason, &le) {
		ev = ev.Int("line", le.Line).Stringer("section", le.Section)
	}
	ev.Msg("fail")

	if store == nil {
		return
	}
	if err := store.SaveFailure(ctx, name, reason.Error()); err != nil {
		log.Error().Err(err).Str("source", name).Msg("recording failure")
	}
}

package main

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"osubeatmap/dotosu"
)

// Result is the outcome of decoding one source.
type Result struct {
	Name    string
	Beatmap *dotosu.Beatmap
	Err     error
}

// DecodeAll loads and decodes every path on at most workers goroutines.
// Per-file failures are reported in the results; the returned error is only
// set when ctx is cancelled.
func DecodeAll(ctx context.Context, paths []string, workers int, log zerolog.Logger, opts ...dotosu.Option) ([]Result, error) {
	var (
		mu      sync.Mutex
		results []Result
	)
	add := func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for _, path := range paths {
		g.Go(func() error {
			defer Recover(func(err error) {
				add(Result{Name: path, Err: err})
			})
			if err := ctx.Err(); err != nil {
				return err
			}
			sources, err := LoadSources(path, log)
			if err != nil {
				add(Result{Name: path, Err: err})
				return nil
			}
			for _, src := range sources {
				l := log.With().Str("source", src.Name()).Logger()
				srcOpts := append([]dotosu.Option{dotosu.WithLogger(l)}, opts...)
				bm, err := dotosu.Parse(string(src.Data), srcOpts...)
				add(Result{Name: src.Name(), Beatmap: bm, Err: err})
			}
			return nil
		})
	}
	err := g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, err
}

// Recover turns a panic in the calling goroutine into an error for report.
func Recover(report func(error)) {
	if r := recover(); r != nil {
		report(HandlePanic(r))
	}
}

func HandlePanic(panic any) error {
	buf := make([]byte, 100000)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	return fmt.Errorf("panic: %v\n\n%s", panic, string(buf))
}

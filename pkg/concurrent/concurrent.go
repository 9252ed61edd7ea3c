package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element in its own goroutine, at most workers at a time.
// A workers value below 1 means no limit. It waits for all goroutines and returns the
// first error encountered; the context passed to action is cancelled on that error.
func ForEach[T any](ctx context.Context, items []T, workers int, action func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return action(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Map applies mapFn to every element in parallel, preserving order in the result.
// At most workers goroutines run at once; a value below 1 means no limit.
func Map[T any, R any](items []T, workers int, mapFn func(T) R) []R {
	out := make([]R, len(items))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for idx, val := range items {
		g.Go(func() error {
			out[idx] = mapFn(val)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

package media

import (
	"context"

	"photoframe/internal/domain/media"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Item is one file queued for batch resolution.
type Item struct {
	File   media.MediaFile
	Bundle media.SourceURLBundle
}

// Result is the outcome for the Item at the same index.
type Result struct {
	File media.MediaFile
	Err  error
}

// ResolveAll resolves independent files concurrently. Results keep the
// input order; a failing item does not stop the others.
func (s *Service) ResolveAll(ctx context.Context, items []Item) []Result {
	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range items {
		g.Go(func() error {
			file, err := s.Resolve(gctx, item.File, item.Bundle)
			results[i] = Result{File: file, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

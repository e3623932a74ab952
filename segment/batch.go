package segment

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ava12/lagrum/parser"
)

// Batch segments docs in parallel using at most workers goroutines, workers <= 0 means no limit.
// Each document gets its own matching context, spans[i] and stats[i] belong to docs[i].
// Returns ctx error if ctx is done before all documents are segmented.
func (s *Segmenter) Batch(ctx context.Context, docs []string, workers int) (spans [][]Span, stats []parser.Stats, e error) {
	spans = make([][]Span, len(docs))
	stats = make([]parser.Stats, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}

		i, doc := i, doc
		g.Go(func() error {
			ss, st, e := s.SegmentStats(gctx, doc)
			if e != nil {
				return e
			}

			spans[i], stats[i] = ss, st
			return nil
		})
	}

	if e = g.Wait(); e != nil {
		return nil, nil, e
	}
	if e = ctx.Err(); e != nil {
		return nil, nil, e
	}
	return spans, stats, nil
}

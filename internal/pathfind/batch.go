package pathfind

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gridpath/internal/grid"
)

// Query is one start/target pair for SearchBatch.
type Query struct {
	Start  grid.Coord
	Target grid.Coord
}

// SearchBatch runs independent searches on g with at most workers running at
// once. Results are returned in query order. Cancellation is observed
// between searches; a search that has started always completes.
func SearchBatch(ctx context.Context, g *grid.Grid, queries []Query, workers int) ([]Result, error) {
	if g == nil {
		return nil, ErrNoGrid
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(queries))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, q := range queries {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := Search(g, q.Start, q.Target)
			if err != nil {
				return fmt.Errorf("query %d %v->%v: %w", i, q.Start, q.Target, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

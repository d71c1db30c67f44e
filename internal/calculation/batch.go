package calculation

import (
	"context"
	"runtime"

	"github.com/rgehrsitz/finiquito/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CalculateAll calculates every record concurrently. Results keep the order
// of records. The only error is ctx's, checked before each record starts.
func (ce *CalculationEngine) CalculateAll(ctx context.Context, records []domain.EmployeeRecord) ([]domain.CalculationResult, error) {
	results := make([]domain.CalculationResult, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ce.Calculate(records[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

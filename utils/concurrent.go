package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Concurrent runs execute for every element of array with at most
// concurrency goroutines in flight. The first error cancels the context
// handed to the remaining executions and is returned.
func Concurrent[T any](ctx context.Context, array []T, concurrency int, execute func(ctx context.Context, one T, executionNumber int) error) error {
	if concurrency < 1 {
		concurrency = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for idx, one := range array {
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return execute(ctx, one, idx)
			}
		})
	}

	return group.Wait()
}

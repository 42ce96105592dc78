package protocol

import (
	"context"
	"fmt"
	"reflect"

	"github.com/datazip-inc/sieve/predicate"
	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils"
	"github.com/datazip-inc/sieve/utils/logger"
)

// compiled is shared by every filter run of the process
var compiled = &predicate.Cache{}

// FilterRecords keeps the records of a []shape that satisfy every condition,
// in their original order. Conditions are built before any record is read.
func FilterRecords(ctx context.Context, shape reflect.Type, records reflect.Value, conditions []types.Condition, concurrency int) (reflect.Value, error) {
	logger.Infof("filtering %d records of shape %s with %d conditions", records.Len(), shape, len(conditions))

	funcs := make([]predicate.Func, 0, len(conditions))
	for idx, condition := range conditions {
		fn, err := compiled.Compile(shape, condition)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("failed to build condition[%d] [%s]: %w", idx, condition, err)
		}
		funcs = append(funcs, fn)
	}

	rows := make([]reflect.Value, records.Len())
	for i := range rows {
		rows[i] = records.Index(i)
	}

	// every execution owns its slot, no lock needed
	keep := make([]bool, len(rows))
	err := utils.Concurrent(ctx, rows, concurrency, func(_ context.Context, row reflect.Value, executionNumber int) error {
		keep[executionNumber] = matchesAll(row, funcs)
		return nil
	})
	if err != nil {
		return reflect.Value{}, err
	}

	filtered := reflect.MakeSlice(reflect.SliceOf(shape), 0, len(rows))
	for i, row := range rows {
		if keep[i] {
			filtered = reflect.Append(filtered, row)
		}
	}

	logger.Infof("matched %d of %d records", filtered.Len(), len(rows))
	return filtered, nil
}

func matchesAll(row reflect.Value, funcs []predicate.Func) bool {
	for _, fn := range funcs {
		if !fn(row) {
			return false
		}
	}
	return true
}

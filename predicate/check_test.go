package predicate

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/sieve/types"
)

func TestCheck(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		err := Check(personType,
			types.Condition{Path: "Age", Operator: types.GreaterThan, Value: 30},
			types.Condition{Path: "Name", Operator: types.StartsWith, Value: "Jo"},
		)
		assert.NoError(t, err)
	})

	t.Run("no conditions", func(t *testing.T) {
		assert.NoError(t, Check(personType))
	})

	t.Run("aggregates every failure", func(t *testing.T) {
		err := Check(personType,
			types.Condition{Path: "Age", Operator: types.GreaterThan, Value: 30},
			types.Condition{Path: "Salary", Operator: types.Equal, Value: 1},
			types.Condition{Path: "Age", Operator: types.Contains, Value: "not-a-number"},
			types.Condition{Path: "Age", Operator: types.Equal, Value: nil},
			types.Condition{Path: "", Operator: types.Equal, Value: 1},
		)
		require.Error(t, err)

		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		require.Len(t, merr.Errors, 4)

		var pathErr *types.PathResolutionError
		assert.True(t, errors.As(merr.Errors[0], &pathErr))
		assert.Contains(t, merr.Errors[0].Error(), "condition[1]")

		var convErr *types.ValueConversionError
		assert.True(t, errors.As(merr.Errors[1], &convErr))
		assert.Contains(t, merr.Errors[1].Error(), "condition[2]")

		var nullErr *types.NullNotAllowedError
		assert.True(t, errors.As(merr.Errors[2], &nullErr))

		assert.Contains(t, merr.Errors[3].Error(), "condition[4] is invalid")
		assert.Contains(t, merr.Errors[3].Error(), "path")
	})
}

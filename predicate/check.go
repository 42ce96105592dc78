package predicate

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"

	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils"
)

// Check builds every condition against root and reports all failures at
// once. It returns nil when every condition builds.
func Check(root reflect.Type, conditions ...types.Condition) error {
	var result error
	for idx, condition := range conditions {
		if err := utils.Validate(condition); err != nil {
			result = multierror.Append(result, fmt.Errorf("condition[%d] is invalid: %w", idx, err))
			continue
		}

		if _, err := Compile(root, condition); err != nil {
			result = multierror.Append(result, fmt.Errorf("condition[%d] [%s]: %w", idx, condition, err))
		}
	}

	return result
}

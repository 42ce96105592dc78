// Package predicate builds typed, reusable predicates over Go record types
// from weakly-typed (path, operator, value) conditions.
//
// A build resolves the path, classifies the leaf type, checks the operator,
// coerces the raw value and assembles a closure. The first failing stage
// aborts the build; evaluation of a built predicate never fails.
package predicate

import (
	"reflect"

	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils/logger"
	"github.com/datazip-inc/sieve/utils/typeutils"
)

// Predicate is a pure test over values of T, safe for concurrent use.
type Predicate[T any] func(entity T) bool

// Build compiles a predicate over T, which is a struct type or a pointer to one.
//
// It fails with *types.PathResolutionError, *types.UnsupportedOperatorError,
// *types.NullNotAllowedError or *types.ValueConversionError.
func Build[T any](path string, op types.Operator, raw any) (Predicate[T], error) {
	return BuildCondition[T](types.Condition{Path: path, Operator: op, Value: raw})
}

// BuildCondition is Build for a condition triple.
func BuildCondition[T any](condition types.Condition) (Predicate[T], error) {
	compiled, err := Compile(reflect.TypeFor[T](), condition)
	if err != nil {
		return nil, err
	}

	return func(entity T) bool {
		return compiled(reflect.ValueOf(&entity).Elem())
	}, nil
}

// Compile is the non-generic form of Build for root types known only at run time.
// The returned Func expects values of root (or pointers to it).
func Compile(root reflect.Type, condition types.Condition) (Func, error) {
	logger.Debugf(
		"[Compile] root=%s path=%s operator=%s value=%v (%T)",
		root,
		condition.Path,
		condition.Operator,
		condition.Value,
		condition.Value,
	)

	path, err := ResolvePath(root, condition.Path)
	if err != nil {
		logger.Debugf("[Compile] failed to resolve path: %s", err)
		return nil, err
	}

	category := typeutils.Classify(path.Leaf()).WithNullable(path.Nullable())
	logger.Debugf("[Compile] resolved %s -> %s category=%s", condition.Path, path, category)

	if err := validateRoles(category, condition.Operator, condition.Value); err != nil {
		logger.Debugf("[Compile] %s", err)
		return nil, err
	}

	var (
		literal typeutils.Literal
		set     []typeutils.Literal
	)
	switch {
	case condition.Operator == types.ContainsOnValue:
		set, err = typeutils.ReformatSet(category, path.Base(), condition.Value)
	case condition.Operator == types.Contains && category.IsCollection():
		literal, err = typeutils.ReformatElement(category, path.Base(), condition.Value)
	default:
		literal, err = typeutils.ReformatValue(category, path.Base(), condition.Value)
	}
	if err != nil {
		logger.Debugf("[Compile] failed to coerce value: %s", err)
		return nil, err
	}

	// the literal is coerced before the matrix is consulted, a malformed value
	// reports a conversion error even when the operator is illegal too
	if err := validateMatrix(category, condition.Operator); err != nil {
		logger.Debugf("[Compile] %s", err)
		return nil, err
	}

	if set != nil {
		logger.Debugf("[Compile] coerced set of %d literals", len(set))
	} else {
		logger.Debugf("[Compile] coerced literal=%v null=%v", literal.Interface(), literal.Null)
	}

	return assemble(path, category, condition.Operator, literal, set), nil
}

package predicate

import (
	"reflect"
	"strings"

	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils/typeutils"
)

// Func is a compiled predicate over a reflected root value.
type Func func(root reflect.Value) bool

// assemble closes over the resolved path and the coerced literal(s). Operators
// reaching this point are already validated for the category.
func assemble(path *PropertyPath, category types.TypeCategory, op types.Operator, literal typeutils.Literal, set []typeutils.Literal) Func {
	switch op {
	case types.Equal:
		equal := equalTo(category, literal)
		return func(root reflect.Value) bool {
			value, present := path.Get(root)
			return equal(value, present)
		}
	case types.NotEqual:
		equal := equalTo(category, literal)
		return func(root reflect.Value) bool {
			value, present := path.Get(root)
			return !equal(value, present)
		}
	case types.LessThan, types.LessThanOrEqual, types.GreaterThan, types.GreaterThanOrEqual:
		accept := ordering(op)
		return func(root reflect.Value) bool {
			value, present := path.Get(root)
			if !present || literal.Null {
				return false
			}
			return accept(typeutils.Compare(category, value, literal.Value))
		}
	case types.Contains:
		if category.Kind == types.Collection {
			return containsElement(path, *category.Elem, literal)
		}
		return matchString(path, literal, strings.Contains)
	case types.StartsWith:
		return matchString(path, literal, strings.HasPrefix)
	case types.EndsWith:
		return matchString(path, literal, strings.HasSuffix)
	case types.ContainsOnValue:
		return containsOnValue(path, category, set)
	}

	// unreachable behind the validator
	return func(reflect.Value) bool { return false }
}

// equalTo treats the null literal as equal to an absent value only.
func equalTo(category types.TypeCategory, literal typeutils.Literal) func(value reflect.Value, present bool) bool {
	if literal.Null {
		return func(_ reflect.Value, present bool) bool {
			return !present
		}
	}

	if category.Kind == types.String {
		folded := typeutils.Fold(literal.Value.String())
		return func(value reflect.Value, present bool) bool {
			return present && typeutils.Fold(value.String()) == folded
		}
	}

	return func(value reflect.Value, present bool) bool {
		return present && typeutils.Equal(category, value, literal.Value)
	}
}

func ordering(op types.Operator) func(cmp int) bool {
	switch op {
	case types.LessThan:
		return func(cmp int) bool { return cmp < 0 }
	case types.LessThanOrEqual:
		return func(cmp int) bool { return cmp <= 0 }
	case types.GreaterThan:
		return func(cmp int) bool { return cmp > 0 }
	default:
		return func(cmp int) bool { return cmp >= 0 }
	}
}

// matchString applies a folded string test, absent values and the null
// literal never match.
func matchString(path *PropertyPath, literal typeutils.Literal, test func(s, substr string) bool) Func {
	if literal.Null {
		return func(reflect.Value) bool { return false }
	}

	folded := typeutils.Fold(literal.Value.String())
	return func(root reflect.Value) bool {
		value, present := path.Get(root)
		return present && test(typeutils.Fold(value.String()), folded)
	}
}

// containsElement tests membership of the literal in the collection property.
// A null literal matches nil elements.
func containsElement(path *PropertyPath, elem types.TypeCategory, literal typeutils.Literal) Func {
	var folded string
	foldStrings := elem.Kind == types.String && !literal.Null
	if foldStrings {
		folded = typeutils.Fold(literal.Value.String())
	}

	return func(root reflect.Value) bool {
		collection, present := path.Get(root)
		if !present {
			return false
		}

		for i := 0; i < collection.Len(); i++ {
			if foldStrings {
				element, elementPresent := typeutils.Indirect(collection.Index(i))
				if elementPresent && typeutils.Fold(element.String()) == folded {
					return true
				}
				continue
			}

			if typeutils.ElementEqual(elem, collection.Index(i), literal.Value) {
				return true
			}
		}
		return false
	}
}

// containsOnValue tests membership of the property value in the literal set.
// An absent value matches a null element.
func containsOnValue(path *PropertyPath, category types.TypeCategory, set []typeutils.Literal) Func {
	members := make([]func(value reflect.Value, present bool) bool, len(set))
	for i, literal := range set {
		members[i] = equalTo(category, literal)
	}

	return func(root reflect.Value) bool {
		value, present := path.Get(root)
		for _, member := range members {
			if member(value, present) {
				return true
			}
		}
		return false
	}
}

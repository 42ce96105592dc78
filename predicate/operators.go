package predicate

import (
	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils/typeutils"
)

// validOperators is the operator validity matrix, one row per category.
// ContainsOnValue is not checked here, its collection role sits on the literal.
var validOperators = map[types.Category]map[types.Operator]bool{
	types.String: {
		types.Equal:      true,
		types.NotEqual:   true,
		types.Contains:   true,
		types.StartsWith: true,
		types.EndsWith:   true,
	},
	types.CharType: {
		types.Equal:    true,
		types.NotEqual: true,
	},
	types.Boolean: {
		types.Equal:    true,
		types.NotEqual: true,
	},
	types.Guid: {
		types.Equal:    true,
		types.NotEqual: true,
	},
	types.Numeric: {
		types.Equal:              true,
		types.NotEqual:           true,
		types.LessThan:           true,
		types.LessThanOrEqual:    true,
		types.GreaterThan:        true,
		types.GreaterThanOrEqual: true,
	},
	types.DateTime: {
		types.Equal:              true,
		types.NotEqual:           true,
		types.LessThan:           true,
		types.LessThanOrEqual:    true,
		types.GreaterThan:        true,
		types.GreaterThanOrEqual: true,
	},
	types.Collection: {
		types.Equal:           true,
		types.NotEqual:        true,
		types.Contains:        true,
		types.ContainsOnValue: true,
	},
	types.Object: {
		types.Equal:    true,
		types.NotEqual: true,
	},
}

// AllowedOperators lists the operators legal for category in declaration order.
func AllowedOperators(category types.Category) []types.Operator {
	var allowed []types.Operator
	for _, op := range types.Operators() {
		if validOperators[category][op] {
			allowed = append(allowed, op)
		}
	}
	return allowed
}

// ValidateOperator checks op against the category of the leaf and, for
// ContainsOnValue, that the raw literal is a collection.
func ValidateOperator(category types.TypeCategory, op types.Operator, raw any) error {
	if err := validateRoles(category, op, raw); err != nil {
		return err
	}
	return validateMatrix(category, op)
}

func validateRoles(category types.TypeCategory, op types.Operator, raw any) error {
	if op == types.ContainsOnValue && !typeutils.IsSequence(raw) {
		return &types.UnsupportedOperatorError{Operator: op, Category: category}
	}
	return nil
}

func validateMatrix(category types.TypeCategory, op types.Operator) error {
	if op == types.ContainsOnValue {
		return nil
	}
	if !validOperators[category.Kind][op] {
		return &types.UnsupportedOperatorError{Operator: op, Category: category}
	}
	return nil
}

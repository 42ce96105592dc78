package typeutils

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/datazip-inc/sieve/types"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
	charType = reflect.TypeOf(types.Char(0))
)

// Classify maps a Go type to its category. Every pointer level marks the
// category nullable; slices, maps and interfaces are nullable on their own.
func Classify(t reflect.Type) types.TypeCategory {
	if t == nil {
		return types.TypeCategory{Kind: types.Object, Nullable: true}
	}

	nullable := false
	for t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	category := classifyBase(t)
	if nullable {
		category.Nullable = true
	}
	return category
}

func classifyBase(t reflect.Type) types.TypeCategory {
	switch {
	case t == uuidType:
		return types.TypeCategory{Kind: types.Guid}
	case t == timeType || isNamedConvertible(t, timeType, reflect.Struct):
		return types.TypeCategory{Kind: types.DateTime}
	case t == charType:
		return types.TypeCategory{Kind: types.CharType}
	}

	switch t.Kind() {
	case reflect.String:
		return types.TypeCategory{Kind: types.String}
	case reflect.Bool:
		return types.TypeCategory{Kind: types.Boolean}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.TypeCategory{Kind: types.Numeric, Numeric: types.Signed}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return types.TypeCategory{Kind: types.Numeric, Numeric: types.Unsigned}
	case reflect.Float32, reflect.Float64:
		return types.TypeCategory{Kind: types.Numeric, Numeric: types.Float}
	case reflect.Slice, reflect.Array:
		elem := Classify(t.Elem())
		return types.TypeCategory{
			Kind:     types.Collection,
			Nullable: t.Kind() == reflect.Slice,
			Elem:     &elem,
		}
	case reflect.Map, reflect.Interface:
		return types.TypeCategory{Kind: types.Object, Nullable: true}
	default:
		// structs, complex numbers, funcs and channels
		return types.TypeCategory{Kind: types.Object}
	}
}

// isNamedConvertible matches named types declared over a well-known type,
// e.g. `type Timestamp time.Time`.
func isNamedConvertible(t, well reflect.Type, kind reflect.Kind) bool {
	return t.Kind() == kind && t.Name() != "" && t.ConvertibleTo(well)
}

// BaseType strips every pointer level from t.
func BaseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Indirect follows pointers and interfaces. It returns false when it meets a nil.
func Indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

package typeutils

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/datazip-inc/sieve/types"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// plain decimal with an optional exponent, what ParseFloat accepts beyond
// this (NaN, Inf, hex floats) is rejected
var decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// Literal is a raw value coerced to the base type of a leaf.
// Null marks the absent literal of a nullable leaf; Value is invalid then.
type Literal struct {
	Value reflect.Value
	Null  bool
}

// Interface returns the literal as an any, nil for the null literal.
func (l Literal) Interface() any {
	if l.Null || !l.Value.IsValid() {
		return nil
	}
	return l.Value.Interface()
}

// ReformatValue coerces raw into the base type of target following the rules
// of category. Strings are parsed in the canonical form of the category,
// values of another Go type are converted only when no information is lost,
// and nil is accepted only for nullable categories.
func ReformatValue(category types.TypeCategory, target reflect.Type, raw any) (Literal, error) {
	target = BaseType(target)

	value, present := Indirect(reflect.ValueOf(raw))
	if !present {
		if category.Nullable {
			return Literal{Null: true}, nil
		}
		return Literal{}, &types.NullNotAllowedError{Category: category}
	}

	reformatted, err := reformat(category, target, value)
	if err != nil {
		var nullErr *types.NullNotAllowedError
		var convErr *types.ValueConversionError
		if errors.As(err, &nullErr) || errors.As(err, &convErr) {
			return Literal{}, err
		}
		return Literal{}, &types.ValueConversionError{Raw: raw, Category: category, Err: err}
	}

	return Literal{Value: reformatted}, nil
}

// ReformatElement coerces the scalar searched for inside a collection
// property to the element category of the collection.
func ReformatElement(category types.TypeCategory, target reflect.Type, raw any) (Literal, error) {
	if !category.IsCollection() {
		return ReformatValue(category, target, raw)
	}
	return ReformatValue(*category.Elem, BaseType(target).Elem(), raw)
}

// ReformatSet coerces every element of a collection literal independently to
// the category of a scalar property.
func ReformatSet(category types.TypeCategory, target reflect.Type, raw any) ([]Literal, error) {
	value, ok := sequence(raw)
	if !ok {
		return nil, &types.ValueConversionError{Raw: raw, Category: category, Err: errors.New("expected a collection literal")}
	}

	set := make([]Literal, 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		literal, err := ReformatValue(category, target, value.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		set = append(set, literal)
	}

	return set, nil
}

// IsSequence reports whether raw is a slice or an array.
func IsSequence(raw any) bool {
	_, ok := sequence(raw)
	return ok
}

func sequence(raw any) (reflect.Value, bool) {
	value, present := Indirect(reflect.ValueOf(raw))
	if !present {
		return value, false
	}
	return value, value.Kind() == reflect.Slice || value.Kind() == reflect.Array
}

// Materialize builds a value of type t, which may add pointer levels on top of
// the literal's base type.
func Materialize(literal Literal, t reflect.Type) reflect.Value {
	if literal.Null {
		return reflect.Zero(t)
	}

	if t.Kind() == reflect.Pointer {
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(Materialize(literal, t.Elem()))
		return ptr
	}

	return literal.Value
}

func reformat(category types.TypeCategory, target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch category.Kind {
	case types.String:
		return reformatString(target, value)
	case types.Boolean:
		return reformatBool(target, value)
	case types.Numeric:
		return reformatNumber(category.Numeric, target, value)
	case types.CharType:
		return reformatChar(target, value)
	case types.DateTime:
		return reformatTime(target, value)
	case types.Guid:
		return reformatGUID(target, value)
	case types.Collection:
		return reformatCollection(category, target, value)
	default:
		return reformatObject(target, value)
	}
}

func reformatString(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	var s string
	switch {
	case value.Kind() == reflect.String:
		return value.Convert(target), nil
	case value.Type() == charType:
		s = string(rune(value.Int()))
	case value.Kind() == reflect.Bool:
		s = strconv.FormatBool(value.Bool())
	case isSignedKind(value.Kind()):
		s = strconv.FormatInt(value.Int(), 10)
	case isUnsignedKind(value.Kind()):
		s = strconv.FormatUint(value.Uint(), 10)
	case isFloatKind(value.Kind()):
		s = strconv.FormatFloat(value.Float(), 'f', -1, 64)
	default:
		return reflect.Value{}, fmt.Errorf("expected a string, found %s", value.Type())
	}

	return reflect.ValueOf(s).Convert(target), nil
}

func reformatBool(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch value.Kind() {
	case reflect.Bool:
		return value.Convert(target), nil
	case reflect.String:
		s := strings.TrimSpace(value.String())
		switch {
		case strings.EqualFold(s, "true"):
			return reflect.ValueOf(true).Convert(target), nil
		case strings.EqualFold(s, "false"):
			return reflect.ValueOf(false).Convert(target), nil
		}
		return reflect.Value{}, fmt.Errorf("[%s] is neither true nor false", s)
	}

	return reflect.Value{}, fmt.Errorf("expected a boolean, found %s", value.Type())
}

func reformatNumber(kind types.NumericKind, target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch k := value.Kind(); {
	case k == reflect.String:
		return parseNumber(kind, target, strings.TrimSpace(value.String()))
	case isSignedKind(k):
		return convertInt(kind, target, value.Int())
	case isUnsignedKind(k):
		return convertUint(kind, target, value.Uint())
	case isFloatKind(k):
		return convertFloat(kind, target, value.Float())
	}

	return reflect.Value{}, fmt.Errorf("expected a number, found %s", value.Type())
}

func parseNumber(kind types.NumericKind, target reflect.Type, s string) (reflect.Value, error) {
	switch kind {
	case types.Signed:
		n, err := strconv.ParseInt(s, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(target), nil
	case types.Unsigned:
		n, err := strconv.ParseUint(s, 10, target.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(n).Convert(target), nil
	default:
		if !decimalPattern.MatchString(s) {
			return reflect.Value{}, fmt.Errorf("[%s] is not a decimal number", s)
		}
		f, err := strconv.ParseFloat(s, target.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(f).Convert(target), nil
	}
}

func convertInt(kind types.NumericKind, target reflect.Type, n int64) (reflect.Value, error) {
	out := reflect.New(target).Elem()
	switch kind {
	case types.Signed:
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, target)
		}
		out.SetInt(n)
	case types.Unsigned:
		if n < 0 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, target)
		}
		out.SetUint(uint64(n))
	default:
		out.SetFloat(float64(n))
	}
	return out, nil
}

func convertUint(kind types.NumericKind, target reflect.Type, n uint64) (reflect.Value, error) {
	out := reflect.New(target).Elem()
	switch kind {
	case types.Signed:
		if n > math.MaxInt64 || out.OverflowInt(int64(n)) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, target)
		}
		out.SetInt(int64(n))
	case types.Unsigned:
		if out.OverflowUint(n) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, target)
		}
		out.SetUint(n)
	default:
		out.SetFloat(float64(n))
	}
	return out, nil
}

func convertFloat(kind types.NumericKind, target reflect.Type, f float64) (reflect.Value, error) {
	out := reflect.New(target).Elem()
	if kind == types.Float {
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", f, target)
		}
		out.SetFloat(f)
		return out, nil
	}

	// integral targets only take whole numbers inside the int64/uint64 range
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return reflect.Value{}, fmt.Errorf("%v is not a whole number", f)
	}

	if kind == types.Signed {
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", f, target)
		}
		return convertInt(kind, target, int64(f))
	}

	if f < 0 || f >= math.MaxUint64 {
		return reflect.Value{}, fmt.Errorf("%v overflows %s", f, target)
	}
	return convertUint(kind, target, uint64(f))
}

func reformatChar(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch value.Kind() {
	case reflect.String:
		s := value.String()
		if utf8.RuneCountInString(s) != 1 {
			return reflect.Value{}, fmt.Errorf("[%s] is not a single character", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return reflect.ValueOf(r).Convert(target), nil
	case reflect.Int32:
		return value.Convert(target), nil
	}

	return reflect.Value{}, fmt.Errorf("expected a character, found %s", value.Type())
}

func reformatTime(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch {
	case value.Kind() == reflect.String:
		t, err := ParseTimestamp(value.String())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(t).Convert(target), nil
	case value.Kind() == reflect.Struct && value.Type().ConvertibleTo(target):
		return value.Convert(target), nil
	}

	return reflect.Value{}, fmt.Errorf("expected a timestamp, found %s", value.Type())
}

func reformatGUID(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch {
	case value.Kind() == reflect.String:
		id, err := uuid.Parse(strings.TrimSpace(value.String()))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(id).Convert(target), nil
	case value.Kind() == reflect.Array && value.Type().ConvertibleTo(target):
		return value.Convert(target), nil
	case value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.Uint8:
		id, err := uuid.FromBytes(value.Bytes())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(id).Convert(target), nil
	}

	return reflect.Value{}, fmt.Errorf("expected a guid, found %s", value.Type())
}

func reformatCollection(category types.TypeCategory, target reflect.Type, value reflect.Value) (reflect.Value, error) {
	switch value.Kind() {
	case reflect.String:
		decoded := reflect.New(target)
		if err := json.Unmarshal([]byte(value.String()), decoded.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return decoded.Elem(), nil
	case reflect.Slice, reflect.Array:
		var out reflect.Value
		if target.Kind() == reflect.Array {
			if value.Len() != target.Len() {
				return reflect.Value{}, fmt.Errorf("expected %d elements, found %d", target.Len(), value.Len())
			}
			out = reflect.New(target).Elem()
		} else {
			out = reflect.MakeSlice(target, value.Len(), value.Len())
		}

		for i := 0; i < value.Len(); i++ {
			elem, err := ReformatValue(*category.Elem, target.Elem(), value.Index(i).Interface())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(Materialize(elem, target.Elem()))
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("expected a collection, found %s", value.Type())
}

func reformatObject(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	if value.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(value)
		return out, nil
	}

	if value.Kind() == reflect.String {
		decoded := reflect.New(target)
		if reflect.PointerTo(target).Implements(textUnmarshalerType) {
			if err := decoded.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value.String())); err != nil {
				return reflect.Value{}, err
			}
			return decoded.Elem(), nil
		}

		if err := json.Unmarshal([]byte(value.String()), decoded.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return decoded.Elem(), nil
	}

	if value.Kind() == target.Kind() && value.Type().ConvertibleTo(target) {
		return value.Convert(target), nil
	}

	// structured literals decoded from JSON or YAML arrive as map[string]any
	// or []any, they are re-encoded and decoded into the target
	switch value.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return redecode(target, value)
	}

	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", value.Type(), target)
}

func redecode(target reflect.Type, value reflect.Value) (reflect.Value, error) {
	data, err := json.Marshal(value.Interface())
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to marshal %s: %s", value.Type(), err)
	}

	decoded := reflect.New(target)
	decoder := json.NewDecoder(bytes.NewReader(data))
	if target.Kind() == reflect.Struct {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(decoded.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("%s does not decode into %s: %s", value.Type(), target, err)
	}
	return decoded.Elem(), nil
}

func isSignedKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsignedKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

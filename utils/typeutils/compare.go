package typeutils

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"golang.org/x/text/cases"

	"github.com/datazip-inc/sieve/types"
)

// Fold returns the Unicode case folded form of s. A Caser keeps state, so a
// new one is taken for every call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Compare orders two present values of the same category.
// It returns 0 for equal, -1 if a < b else 1 if a > b.
func Compare(category types.TypeCategory, a, b reflect.Value) int {
	switch category.Kind {
	case types.Numeric:
		return compareNumbers(category.Numeric, a, b)
	case types.DateTime:
		return toTime(a).Compare(toTime(b))
	case types.String:
		return strings.Compare(Fold(a.String()), Fold(b.String()))
	case types.CharType:
		return compareOrdered(a.Int(), b.Int())
	case types.Boolean:
		aBool, bBool := a.Bool(), b.Bool()
		// false < true
		if !aBool && bBool {
			return -1
		} else if aBool && !bBool {
			return 1
		}
		return 0
	default:
		// no natural order, compare the printed forms
		return strings.Compare(fmt.Sprintf("%v", a.Interface()), fmt.Sprintf("%v", b.Interface()))
	}
}

func compareNumbers(kind types.NumericKind, a, b reflect.Value) int {
	switch kind {
	case types.Signed:
		return compareOrdered(a.Int(), b.Int())
	case types.Unsigned:
		return compareOrdered(a.Uint(), b.Uint())
	default:
		aFloat, bFloat := a.Float(), b.Float()
		// NaN sorts before every number and equals itself
		if math.IsNaN(aFloat) {
			if math.IsNaN(bFloat) {
				return 0
			}
			return -1
		}
		if math.IsNaN(bFloat) {
			return 1
		}
		return compareOrdered(aFloat, bFloat)
	}
}

func compareOrdered[T int64 | uint64 | float64](a, b T) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// Equal reports whether two present values of the same category are equal.
// Strings compare folded, collections element-wise in order.
func Equal(category types.TypeCategory, a, b reflect.Value) bool {
	switch category.Kind {
	case types.String:
		return Fold(a.String()) == Fold(b.String())
	case types.Numeric, types.DateTime, types.CharType, types.Boolean:
		return Compare(category, a, b) == 0
	case types.Collection:
		if category.Elem == nil {
			return reflect.DeepEqual(a.Interface(), b.Interface())
		}
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !ElementEqual(*category.Elem, a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a.Interface(), b.Interface())
	}
}

// ElementEqual compares two values that may still be wrapped in pointers or
// interfaces. Two absent values are equal.
func ElementEqual(category types.TypeCategory, a, b reflect.Value) bool {
	a, aPresent := Indirect(a)
	b, bPresent := Indirect(b)
	if !aPresent || !bPresent {
		return aPresent == bPresent
	}
	return Equal(category, a, b)
}

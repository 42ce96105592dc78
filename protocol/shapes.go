package protocol

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/datazip-inc/sieve/utils/typeutils"
)

// RegisteredShapes maps a lowercased shape name to the struct type records
// are decoded into.
var RegisteredShapes = map[string]reflect.Type{}

// RegisterShape makes the struct type of sample available to --shape.
// It is meant to be called from init functions and panics on a non-struct.
func RegisterShape(name string, sample any) {
	shape := typeutils.BaseType(reflect.TypeOf(sample))
	if shape == nil || shape.Kind() != reflect.Struct {
		panic(fmt.Sprintf("shape [%s] must be a struct, found %T", name, sample))
	}

	RegisteredShapes[strings.ToLower(name)] = shape
}

func lookupShape(name string) (reflect.Type, error) {
	if name == "" {
		return nil, fmt.Errorf("no shape provided, available shapes are [%s]", strings.Join(ShapeNames(), ", "))
	}

	shape, found := RegisteredShapes[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("invalid shape [%s], available shapes are [%s]", name, strings.Join(ShapeNames(), ", "))
	}
	return shape, nil
}

// ShapeNames returns the registered shape names in order.
func ShapeNames() []string {
	names := make([]string, 0, len(RegisteredShapes))
	for name := range RegisteredShapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package predicate

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/mitchellh/hashstructure"

	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils/logger"
)

// Cache memoizes compiled predicates. The zero value is ready to use and safe
// for concurrent use.
type Cache struct {
	compiled sync.Map
}

type cacheKey struct {
	root      reflect.Type
	valueType reflect.Type
	hash      uint64
}

// hashedCondition is what the cache hashes. hashstructure skips unexported
// fields, so structs such as time.Time and sequences that may hold them are
// hashed by their printed form too.
type hashedCondition struct {
	Path     string
	Operator types.Operator
	Value    any
	Printed  string
}

func hashCondition(condition types.Condition) (uint64, error) {
	hashed := hashedCondition{Path: condition.Path, Operator: condition.Operator, Value: condition.Value}
	switch value := reflect.Indirect(reflect.ValueOf(condition.Value)); value.Kind() {
	case reflect.Struct:
		hashed.Value = nil
		hashed.Printed = fmt.Sprintf("%#v", value.Interface())
	case reflect.Slice, reflect.Array:
		hashed.Printed = fmt.Sprintf("%#v", value.Interface())
	}
	return hashstructure.Hash(hashed, nil)
}

// Compile returns the cached Func for condition on root, compiling it on a
// miss. Failed builds are not cached. Conditions whose value can not be
// hashed are compiled every time.
func (c *Cache) Compile(root reflect.Type, condition types.Condition) (Func, error) {
	hash, err := hashCondition(condition)
	if err != nil {
		logger.Debugf("[Cache] condition [%s] is not hashable, compiling without cache: %s", condition, err)
		return Compile(root, condition)
	}

	key := cacheKey{root: root, valueType: reflect.TypeOf(condition.Value), hash: hash}
	if cached, found := c.compiled.Load(key); found {
		logger.Debugf("[Cache] hit: %s", condition)
		return cached.(Func), nil
	}

	logger.Debugf("[Cache] miss: %s", condition)
	compiled, err := Compile(root, condition)
	if err != nil {
		return nil, err
	}

	actual, _ := c.compiled.LoadOrStore(key, compiled)
	return actual.(Func), nil
}

// Len returns the number of cached predicates.
func (c *Cache) Len() int {
	n := 0
	c.compiled.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

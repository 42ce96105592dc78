package predicate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/datazip-inc/sieve/constants"
	"github.com/datazip-inc/sieve/types"
	"github.com/datazip-inc/sieve/utils/typeutils"
)

// resolved caches paths per root type, keyed by the Go field names of the
// resolved path so spelling variants of one path share an entry
var resolved sync.Map

type pathKey struct {
	root reflect.Type
	path string
}

type step struct {
	name  string
	index []int
}

// PropertyPath is a dotted path resolved against a root type into a flat list
// of field accessors.
type PropertyPath struct {
	root     reflect.Type
	steps    []step
	leaf     reflect.Type
	nullable bool
}

// ResolvePath resolves path against root. Segments are separated by dots and
// trimmed; each one names an exported field, its json tag, or the field name
// in any case.
func ResolvePath(root reflect.Type, path string) (*PropertyPath, error) {
	if cached, found := resolved.Load(pathKey{root: root, path: trimSegments(path)}); found {
		return cached.(*PropertyPath), nil
	}

	resolvedPath, err := resolvePath(root, path)
	if err != nil {
		return nil, err
	}

	key := pathKey{root: root, path: strings.Join(resolvedPath.Fields(), constants.PathSeparator)}
	actual, _ := resolved.LoadOrStore(key, resolvedPath)
	return actual.(*PropertyPath), nil
}

func trimSegments(path string) string {
	segments := strings.Split(path, constants.PathSeparator)
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
	}
	return strings.Join(segments, constants.PathSeparator)
}

func resolvePath(root reflect.Type, path string) (*PropertyPath, error) {
	if root == nil {
		return nil, &types.PathResolutionError{Path: path, Reason: "root type is nil"}
	}
	if strings.TrimSpace(path) == "" {
		return nil, &types.PathResolutionError{Path: path, Reason: "path is empty"}
	}

	segments := strings.Split(path, constants.PathSeparator)
	resolvedPath := &PropertyPath{
		root:  root,
		steps: make([]step, 0, len(segments)),
	}

	current := root
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return nil, &types.PathResolutionError{Path: path, Reason: "path contains an empty segment"}
		}

		owner := current
		for owner.Kind() == reflect.Pointer {
			resolvedPath.nullable = true
			owner = owner.Elem()
		}

		if owner.Kind() != reflect.Struct {
			return nil, &types.PathResolutionError{
				Path:    path,
				Segment: segment,
				Type:    owner.String(),
				Reason:  "type has no fields",
			}
		}

		field, found := lookupField(owner, segment)
		if !found {
			return nil, &types.PathResolutionError{
				Path:    path,
				Segment: segment,
				Type:    owner.String(),
				Reason:  "no accessible field with this name",
			}
		}

		if embeddedThroughPointer(owner, field.Index) {
			resolvedPath.nullable = true
		}

		resolvedPath.steps = append(resolvedPath.steps, step{name: field.Name, index: field.Index})
		current = field.Type
	}

	resolvedPath.leaf = current
	if typeutils.Classify(current).Nullable {
		resolvedPath.nullable = true
	}

	return resolvedPath, nil
}

func lookupField(owner reflect.Type, name string) (reflect.StructField, bool) {
	if field, found := owner.FieldByName(name); found && accessible(owner, field.Index) {
		return field, true
	}

	fields := reflect.VisibleFields(owner)
	for _, field := range fields {
		tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if tag != "" && tag != "-" && tag == name && accessible(owner, field.Index) {
			return field, true
		}
	}

	for _, field := range fields {
		if strings.EqualFold(field.Name, name) && accessible(owner, field.Index) {
			return field, true
		}
	}

	return reflect.StructField{}, false
}

// accessible rejects fields reached through an unexported field, reflection
// can not hand those out as interfaces.
func accessible(owner reflect.Type, index []int) bool {
	t := owner
	for _, i := range index {
		t = typeutils.BaseType(t)
		field := t.Field(i)
		if !field.IsExported() {
			return false
		}
		t = field.Type
	}
	return true
}

func embeddedThroughPointer(owner reflect.Type, index []int) bool {
	t := owner
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		if t.Kind() == reflect.Pointer {
			return true
		}
		t = typeutils.BaseType(t)
	}
	return false
}

// Get walks the path from root. It reports false when a pointer on the way,
// or a nil leaf, leaves the value absent.
func (p *PropertyPath) Get(root reflect.Value) (reflect.Value, bool) {
	current := root
	present := false
	for _, s := range p.steps {
		current, present = typeutils.Indirect(current)
		if !present {
			return current, false
		}

		field, err := current.FieldByIndexErr(s.index)
		if err != nil {
			// nil embedded pointer
			return field, false
		}
		current = field
	}

	leaf, present := typeutils.Indirect(current)
	if !present {
		return leaf, false
	}
	if (leaf.Kind() == reflect.Slice || leaf.Kind() == reflect.Map) && leaf.IsNil() {
		return leaf, false
	}

	return leaf, true
}

// Leaf is the declared type of the last field.
func (p *PropertyPath) Leaf() reflect.Type {
	return p.leaf
}

// Base is the leaf type with pointers stripped, the type literals coerce to.
func (p *PropertyPath) Base() reflect.Type {
	return typeutils.BaseType(p.leaf)
}

// Nullable reports whether the leaf can be absent at evaluation time.
func (p *PropertyPath) Nullable() bool {
	return p.nullable
}

// Root is the type the path was resolved against.
func (p *PropertyPath) Root() reflect.Type {
	return p.root
}

// Fields returns the Go field names of every step.
func (p *PropertyPath) Fields() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.name
	}
	return names
}

func (p *PropertyPath) String() string {
	return fmt.Sprintf("%s.%s", typeutils.BaseType(p.root).Name(), strings.Join(p.Fields(), "."))
}

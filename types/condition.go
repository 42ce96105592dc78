package types

import "fmt"

// Condition is a single weakly-typed filter condition: a dotted property path,
// an operator and the raw literal it compares against.
//
// Value is nil, a primitive, a string that still needs parsing, or a
// sequence (usually []string) for ContainsOnValue.
type Condition struct {
	Path     string   `json:"path" yaml:"path" validate:"required"`
	Operator Operator `json:"operator" yaml:"operator" validate:"required"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.Path, c.Operator, c.Value)
}

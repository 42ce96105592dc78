/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"fmt"
	"strings"
)

// Operator is a comparison applied between a property and a literal.
type Operator string

const (
	Equal              Operator = "Equal"
	NotEqual           Operator = "NotEqual"
	LessThan           Operator = "LessThan"
	LessThanOrEqual    Operator = "LessThanOrEqual"
	GreaterThan        Operator = "GreaterThan"
	GreaterThanOrEqual Operator = "GreaterThanOrEqual"
	Contains           Operator = "Contains"
	// ContainsOnValue searches the property value inside a literal collection.
	ContainsOnValue Operator = "ContainsOnValue"
	StartsWith      Operator = "StartsWith"
	EndsWith        Operator = "EndsWith"
)

var symbolicOperators = map[string]Operator{
	"=":  Equal,
	"==": Equal,
	"!=": NotEqual,
	"<>": NotEqual,
	"<":  LessThan,
	"<=": LessThanOrEqual,
	">":  GreaterThan,
	">=": GreaterThanOrEqual,
}

// Operators returns every operator in declaration order.
func Operators() []Operator {
	return []Operator{
		Equal, NotEqual,
		LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual,
		Contains, ContainsOnValue,
		StartsWith, EndsWith,
	}
}

func (o Operator) String() string {
	return string(o)
}

func (o Operator) IsValid() bool {
	switch o {
	case Equal, NotEqual, LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual,
		Contains, ContainsOnValue, StartsWith, EndsWith:
		return true
	}
	return false
}

// IsOrdering reports whether o needs an ordered category.
func (o Operator) IsOrdering() bool {
	switch o {
	case LessThan, LessThanOrEqual, GreaterThan, GreaterThanOrEqual:
		return true
	}
	return false
}

// ParseOperator resolves an operator name (case-insensitive) or one of the
// symbolic aliases = == != <> < <= > >=.
func ParseOperator(s string) (Operator, error) {
	s = strings.TrimSpace(s)
	if op, found := symbolicOperators[s]; found {
		return op, nil
	}

	for _, op := range Operators() {
		if strings.EqualFold(string(op), s) {
			return op, nil
		}
	}

	return "", fmt.Errorf("unknown operator [%s]", s)
}

// UnmarshalText lets operators be decoded from their name or symbol.
func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}

	*o = op
	return nil
}

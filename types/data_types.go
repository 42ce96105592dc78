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
	"unicode/utf8"
)

// Category is the closed set of comparable type classes a leaf property can fall into.
type Category string

const (
	String     Category = "String"
	CharType   Category = "Char"
	Boolean    Category = "Boolean"
	Numeric    Category = "Numeric"
	DateTime   Category = "DateTime"
	Guid       Category = "Guid"
	Collection Category = "Collection"
	Object     Category = "Object"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{String, CharType, Boolean, Numeric, DateTime, Guid, Collection, Object}
}

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	switch c {
	case String, CharType, Boolean, Numeric, DateTime, Guid, Collection, Object:
		return true
	}
	return false
}

// NumericKind refines the Numeric category.
type NumericKind uint8

const (
	NotNumeric NumericKind = iota
	Signed
	Unsigned
	Float
)

func (k NumericKind) String() string {
	switch k {
	case Signed:
		return "signed"
	case Unsigned:
		return "unsigned"
	case Float:
		return "float"
	default:
		return "none"
	}
}

// Char is the Go representation of the Char category. rune is an alias of
// int32 and classifies as Numeric, so character fields are declared as Char.
type Char rune

func (c Char) String() string {
	return string(rune(c))
}

// MarshalText writes the character itself, so JSON holds "A" rather than 65.
func (c Char) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Char) UnmarshalText(text []byte) error {
	if utf8.RuneCount(text) != 1 {
		return fmt.Errorf("[%s] is not a single character", text)
	}

	r, _ := utf8.DecodeRune(text)
	*c = Char(r)
	return nil
}

// TypeCategory is the classification of a leaf type.
//
// Numeric is set only when Kind is Numeric and Elem only when Kind is
// Collection. Nullable reports whether a value of the classified type can be
// absent (nil).
type TypeCategory struct {
	Kind     Category
	Numeric  NumericKind
	Nullable bool
	Elem     *TypeCategory
}

// IsCollection reports whether the category carries an element category.
func (t TypeCategory) IsCollection() bool {
	return t.Kind == Collection && t.Elem != nil
}

// WithNullable returns a copy of t with the nullable flag set to nullable.
func (t TypeCategory) WithNullable(nullable bool) TypeCategory {
	t.Nullable = nullable
	return t
}

func (t TypeCategory) String() string {
	var s string
	switch t.Kind {
	case Numeric:
		s = fmt.Sprintf("%s(%s)", t.Kind, t.Numeric)
	case Collection:
		if t.Elem != nil {
			s = fmt.Sprintf("%s<%s>", t.Kind, t.Elem)
		} else {
			s = string(t.Kind)
		}
	default:
		s = string(t.Kind)
	}

	if t.Nullable {
		s += "?"
	}
	return s
}

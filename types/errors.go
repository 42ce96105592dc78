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

import "fmt"

// PathResolutionError is returned when a property path does not resolve
// against the root type.
type PathResolutionError struct {
	Path    string
	Segment string
	// Type is the type the segment was looked up on.
	Type   string
	Reason string
}

func (e *PathResolutionError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("failed to resolve property path [%s]: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("failed to resolve property path [%s]: segment [%s] on type [%s]: %s", e.Path, e.Segment, e.Type, e.Reason)
}

// UnsupportedOperatorError is returned when an operator is not legal for the
// category of the resolved leaf.
type UnsupportedOperatorError struct {
	Operator Operator
	Category TypeCategory
}

func (e *UnsupportedOperatorError) Error() string {
	if e.Operator == ContainsOnValue {
		return fmt.Sprintf("operator [%s] on category [%s] requires a collection literal", e.Operator, e.Category)
	}
	return fmt.Sprintf("operator [%s] is not supported for category [%s]", e.Operator, e.Category)
}

// NullNotAllowedError is returned when a nil literal targets a non-nullable leaf.
type NullNotAllowedError struct {
	Category TypeCategory
}

func (e *NullNotAllowedError) Error() string {
	return fmt.Sprintf("null value is not allowed for non-nullable category [%s]", e.Category)
}

// ValueConversionError is returned when a raw literal cannot be converted to
// the representation of the leaf.
type ValueConversionError struct {
	Raw      any
	Category TypeCategory
	Err      error
}

func (e *ValueConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to convert value [%v] (%T) to category [%s]", e.Raw, e.Raw, e.Category)
	}
	return fmt.Sprintf("failed to convert value [%v] (%T) to category [%s]: %s", e.Raw, e.Raw, e.Category, e.Err)
}

func (e *ValueConversionError) Unwrap() error {
	return e.Err
}

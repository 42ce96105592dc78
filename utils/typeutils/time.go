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

package typeutils

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ISO-8601 layouts accepted for DateTime literals, most specific first.
// Fractional seconds are accepted by time.Parse even when the layout omits them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses the round-trip ISO-8601 form of an instant.
// Values without a zone offset are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("[%s] is not an ISO-8601 timestamp", s)
}

// FormatTimestamp is the inverse of ParseTimestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// toTime reads a DateTime value, including named types declared over time.Time.
func toTime(v reflect.Value) time.Time {
	if v.Type() != timeType {
		v = v.Convert(timeType)
	}
	return v.Interface().(time.Time)
}

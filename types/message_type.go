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

type CheckStatus string

const (
	CheckSucceeded CheckStatus = "SUCCEEDED"
	CheckFailed    CheckStatus = "FAILED"
)

// CheckResult is printed by the check command.
type CheckResult struct {
	Shape      string      `json:"shape"`
	Conditions int         `json:"conditions"`
	Status     CheckStatus `json:"status"`
	Errors     []string    `json:"errors,omitempty"`
}

// FilterResult summarizes a filter run.
type FilterResult struct {
	Shape   string `json:"shape"`
	Total   int    `json:"total"`
	Matched int    `json:"matched"`
}

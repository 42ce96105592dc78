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
package protocol

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/datazip-inc/sieve/predicate"
	"github.com/datazip-inc/sieve/types"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "build every condition against a shape without evaluating it",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if conditionsPath == "" {
			return fmt.Errorf("--conditions not passed")
		}
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		shape, err := lookupShape(shapeName)
		if err != nil {
			return err
		}

		conditions, err := LoadConditions(conditionsPath)
		if err != nil {
			return err
		}

		result := types.CheckResult{
			Shape:      shape.Name(),
			Conditions: len(conditions),
			Status:     types.CheckSucceeded,
		}

		checkErr := predicate.Check(shape, conditions...)
		if checkErr != nil {
			result.Status = types.CheckFailed
			var merr *multierror.Error
			if errors.As(checkErr, &merr) {
				for _, err := range merr.Errors {
					result.Errors = append(result.Errors, err.Error())
				}
			} else {
				result.Errors = []string{checkErr.Error()}
			}
		}

		if err := writeJSON(outputPath, result); err != nil {
			return err
		}

		if checkErr != nil {
			return fmt.Errorf("%d of %d conditions failed to build", len(result.Errors), len(conditions))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&shapeName, "shape", "", "", "(Required) Registered record shape")
	checkCmd.Flags().StringVarP(&conditionsPath, "conditions", "", "", "(Required) JSON or YAML conditions file")
	checkCmd.Flags().StringVarP(&outputPath, "output", "", "", "(Optional) Write the result here instead of stdout")
}

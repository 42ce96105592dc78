package protocol

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datazip-inc/sieve/constants"
	"github.com/datazip-inc/sieve/types"
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "keep the records matching every condition",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if conditionsPath == "" {
			return fmt.Errorf("--conditions not passed")
		}
		if recordsPath == "" {
			return fmt.Errorf("--records not passed")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		shape, err := lookupShape(shapeName)
		if err != nil {
			return err
		}

		conditions, err := LoadConditions(conditionsPath)
		if err != nil {
			return err
		}

		records, err := LoadRecords(recordsPath, shape)
		if err != nil {
			return err
		}

		filtered, err := FilterRecords(cmd.Context(), shape, records, conditions, viper.GetInt(constants.Concurrency))
		if err != nil {
			return err
		}

		if summaryPath != "" {
			summary := types.FilterResult{Shape: shape.Name(), Total: records.Len(), Matched: filtered.Len()}
			if err := writeJSON(summaryPath, summary); err != nil {
				return err
			}
		}

		return writeJSON(outputPath, filtered.Interface())
	},
}

var summaryPath string

func init() {
	filterCmd.Flags().StringVarP(&shapeName, "shape", "", "", "(Required) Registered record shape")
	filterCmd.Flags().StringVarP(&conditionsPath, "conditions", "", "", "(Required) JSON or YAML conditions file")
	filterCmd.Flags().StringVarP(&recordsPath, "records", "", "", "(Required) JSON array of records")
	filterCmd.Flags().StringVarP(&outputPath, "output", "", "", "(Optional) Write matching records here instead of stdout")
	filterCmd.Flags().StringVarP(&summaryPath, "summary", "", "", "(Optional) Write a match summary to this file")
}

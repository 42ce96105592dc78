package protocol

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datazip-inc/sieve/predicate"
	"github.com/datazip-inc/sieve/types"
)

// operatorsCmd represents the operators command
var operatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "print the operators allowed per category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, category := range types.Categories() {
			allowed := predicate.AllowedOperators(category)
			names := make([]string, len(allowed))
			for i, op := range allowed {
				names[i] = op.String()
			}
			if _, err := fmt.Fprintf(out, "%-10s %s\n", category, strings.Join(names, ", ")); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(out, "\n%s is also allowed on every category when the value is a list\n", types.ContainsOnValue)
		return err
	},
}

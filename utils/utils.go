package utils

import "github.com/spf13/cobra"

// IsValidSubcommand reports whether subcmd names one of the available commands.
func IsValidSubcommand(available []*cobra.Command, subcmd string) bool {
	for _, s := range available {
		if subcmd == s.Name() || s.HasAlias(subcmd) {
			return true
		}
	}
	return false
}

// csvcheck validates transaction export CSVs from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csvcheck",
	Short: "Validate Shift_JIS transaction export CSVs",
	Long: `csvcheck runs the transaction export checks against a CSV file:
the Z00014 amount rule and the record date consistency rule.

Findings are printed as a summary and optionally written out as CSV
tables for the review workflow.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

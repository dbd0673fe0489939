package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/hanzicards/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the card database for problems",
	Long: `Validate loads the card database and reports cards with missing fields and
categories spelled with different letter case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s, dbPath, err := openStore()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		results := validator.NewValidator(s).Validate()

		// Display validation results
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Database '%s' is valid (%d cards).\n", dbPath, s.Len())
		} else {
			fmt.Fprintf(out, "❌ Database '%s' has %d validation errors:\n", dbPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

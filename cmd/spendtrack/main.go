// Command spendtrack is a command-line client for the spendtrack backend:
// expenses, budgets, documents, team members, reports, and budget-plan
// generation, with a locally stored session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendtrack/internal/logger"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "spendtrack",
	Short: "Track expenses and budgets from the command line",
	Long: `spendtrack is a client for the spendtrack personal-finance backend.

Login once with 'spendtrack login'; the session is stored locally and
refreshed automatically when it expires.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(budgetsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(settingsCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spendtrack/internal/budget"
)

var (
	planTotal float64
	planName  string
)

// planCmd generates a budget plan from the configured category weights.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a budget plan from a total amount",
	Long: `Distribute a total monthly amount across your enabled budget
categories according to the configured weights, creating one budget record
per category. Configure weights with 'spendtrack settings categories'.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Float64VarP(&planTotal, "total", "t", 0, "Total amount to distribute")
	planCmd.Flags().StringVarP(&planName, "name", "n", "", "Plan name, e.g. \"May 2026 Monthly Budget\"")
	_ = planCmd.MarkFlagRequired("total")
	_ = planCmd.MarkFlagRequired("name")
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	result, err := a.engine.GeneratePlan(cmd.Context(), planTotal, planName, prefs.Categories)
	if err != nil {
		return err
	}

	fmt.Printf("Generated plan %q (%s) with %d records:\n", result.PlanName, result.PlanID, len(result.Records))
	for _, r := range result.Records {
		fmt.Printf("  %-22s %s %10.2f\n", budget.DisplayName(budget.Category(r.Category)), prefs.Currency, r.Amount)
	}
	return nil
}

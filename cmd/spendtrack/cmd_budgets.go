package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendtrack/internal/api"
	"spendtrack/internal/budget"
)

// budgetsCmd is the parent command for budget record operations.
var budgetsCmd = &cobra.Command{
	Use:     "budgets",
	Aliases: []string{"budget"},
	Short:   "Manage budget records",
}

var budgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets grouped by plan and month",
	RunE:  runBudgetsList,
}

var budgetInput api.BudgetInput

var budgetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a standalone budget record",
	RunE:  runBudgetsAdd,
}

var budgetsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a budget record",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsUpdate,
}

var budgetsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a budget record",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetsRemove,
}

var budgetsRemoveAllCmd = &cobra.Command{
	Use:   "remove-all",
	Short: "Delete every budget record, one by one",
	RunE:  runBudgetsRemoveAll,
}

func init() {
	for _, c := range []*cobra.Command{budgetsAddCmd, budgetsUpdateCmd} {
		c.Flags().StringVarP(&budgetInput.Name, "name", "n", "", "Budget name")
		c.Flags().Float64VarP(&budgetInput.Amount, "amount", "a", 0, "Budgeted amount")
		c.Flags().StringVarP(&budgetInput.Category, "category", "c", "other", "Spending category")
		c.Flags().StringVarP(&budgetInput.Period, "period", "p", "monthly", "Budget period (weekly, monthly, quarterly, yearly)")
	}
	_ = budgetsAddCmd.MarkFlagRequired("name")
	_ = budgetsAddCmd.MarkFlagRequired("amount")

	budgetsCmd.AddCommand(budgetsListCmd)
	budgetsCmd.AddCommand(budgetsAddCmd)
	budgetsCmd.AddCommand(budgetsUpdateCmd)
	budgetsCmd.AddCommand(budgetsRemoveCmd)
	budgetsCmd.AddCommand(budgetsRemoveAllCmd)
}

func runBudgetsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	budgets, err := a.budgets.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Println("No budgets found. Add one or generate a plan to get started.")
		return nil
	}

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	groups := budget.GroupPlans(budgets)
	for _, g := range groups {
		fmt.Printf("%s\n", g.Label())
		for _, p := range g.Plans {
			fmt.Printf("  %s: %s %.2f (plan %s)\n", p.Name, prefs.Currency, p.Total, p.ID)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, b := range p.Budgets {
				fmt.Fprintf(w, "    %s\t%s\t%s %.2f\t%s\n", b.ID, budget.DisplayName(budget.Category(b.Category)), prefs.Currency, b.Amount, b.Period)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}

	// Standalone budgets carry no plan.
	var standalone []api.Budget
	for _, b := range budgets {
		if b.PlanID == "" {
			standalone = append(standalone, b)
		}
	}
	if len(standalone) > 0 {
		fmt.Println("Individual budgets")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, b := range standalone {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s %.2f\t%s\n", b.ID, b.Name, budget.DisplayName(budget.Category(b.Category)), prefs.Currency, b.Amount, b.Period)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func runBudgetsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.budgets.Create(cmd.Context(), budgetInput)
	if err != nil {
		return err
	}
	fmt.Printf("Added budget %s: %s (%.2f, %s)\n", b.ID, b.Name, b.Amount, b.Period)
	return nil
}

func runBudgetsUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.budgets.Update(cmd.Context(), args[0], budgetInput)
	if err != nil {
		return err
	}
	fmt.Printf("Updated budget %s\n", b.ID)
	return nil
}

func runBudgetsRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.budgets.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted budget %s\n", args[0])
	return nil
}

func runBudgetsRemoveAll(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	budgets, err := a.budgets.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Println("Nothing to delete.")
		return nil
	}
	if err := a.budgets.DeleteAll(cmd.Context(), budgets); err != nil {
		return err
	}
	fmt.Printf("Deleted %d budgets\n", len(budgets))
	return nil
}

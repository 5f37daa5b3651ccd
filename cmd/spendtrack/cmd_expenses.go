package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendtrack/internal/api"
)

// expensesCmd is the parent command for expense operations.
var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"expense"},
	Short:   "Manage expenses",
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all expenses",
	RunE:  runExpensesList,
}

var expenseInput api.ExpenseInput

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense",
	RunE:  runExpensesAdd,
}

var expensesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesUpdate,
}

var expensesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpensesRemove,
}

func init() {
	for _, c := range []*cobra.Command{expensesAddCmd, expensesUpdateCmd} {
		c.Flags().StringVarP(&expenseInput.Description, "description", "d", "", "What the money was spent on")
		c.Flags().Float64VarP(&expenseInput.Amount, "amount", "a", 0, "Amount spent")
		c.Flags().StringVarP(&expenseInput.Category, "category", "c", "other", "Spending category")
		c.Flags().StringVar(&expenseInput.Date, "date", "", "Date (YYYY-MM-DD)")
	}
	_ = expensesAddCmd.MarkFlagRequired("description")
	_ = expensesAddCmd.MarkFlagRequired("amount")
	_ = expensesAddCmd.MarkFlagRequired("date")

	expensesCmd.AddCommand(expensesListCmd)
	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesUpdateCmd)
	expensesCmd.AddCommand(expensesRemoveCmd)
}

func runExpensesList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	expenses, err := a.expenses.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses recorded.")
		return nil
	}

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	var total float64
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %.2f\t%s\n", e.ID, e.Date, e.Category, prefs.Currency, e.Amount, e.Description)
		total += e.Amount
	}
	fmt.Fprintf(w, "\t\t\t%s %.2f\ttotal\n", prefs.Currency, total)
	return w.Flush()
}

func runExpensesAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	expense, err := a.expenses.Create(cmd.Context(), expenseInput)
	if err != nil {
		return err
	}
	fmt.Printf("Added expense %s: %s (%.2f)\n", expense.ID, expense.Description, expense.Amount)
	return nil
}

func runExpensesUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	expense, err := a.expenses.Update(cmd.Context(), args[0], expenseInput)
	if err != nil {
		return err
	}
	fmt.Printf("Updated expense %s\n", expense.ID)
	return nil
}

func runExpensesRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.expenses.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted expense %s\n", args[0])
	return nil
}

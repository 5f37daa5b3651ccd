package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var reportStart, reportEnd string

// reportCmd fetches the aggregate spending report for a date range.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the spending report for a date range",
	RunE:  runReport,
}

func init() {
	lastMonth := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")
	reportCmd.Flags().StringVar(&reportStart, "from", lastMonth, "Start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "to", today, "End date (YYYY-MM-DD)")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.reports.Fetch(cmd.Context(), reportStart, reportEnd)
	if err != nil {
		return err
	}

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	fmt.Printf("Report %s to %s\n", reportStart, reportEnd)
	fmt.Printf("Total expenses: %s %.2f\n\n", prefs.Currency, report.TotalExpenses)

	if len(report.ExpensesByCategory) > 0 {
		fmt.Println("By category:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, c := range report.ExpensesByCategory {
			fmt.Fprintf(w, "  %s\t%s %.2f\n", c.Category, prefs.Currency, c.Total)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(report.ExpensesByMonth) > 0 {
		fmt.Println("By month:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, m := range report.ExpensesByMonth {
			fmt.Fprintf(w, "  %s\t%s %.2f\n", m.Month, prefs.Currency, m.Total)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(report.BudgetComparison) > 0 {
		fmt.Println("Budget vs actual:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  CATEGORY\tBUDGETED\tSPENT")
		for _, b := range report.BudgetComparison {
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\n", b.Category, b.Budgeted, b.Spent)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendtrack/internal/budget"
	"spendtrack/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change local preferences",
	RunE:  runSettingsShow,
}

var settingsCurrencyCmd = &cobra.Command{
	Use:   "currency <code>",
	Short: "Set the display currency (ISO 4217)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsCurrency,
}

var settingsWeightCmd = &cobra.Command{
	Use:   "weight <category> <percentage>",
	Short: "Set a category's allocation percentage",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsWeight,
}

var settingsReminderCmd = &cobra.Command{
	Use:   "reminder <frequency>",
	Short: "Set the budget reminder frequency (daily, weekly, monthly, never)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReminder,
}

var settingsThresholdCmd = &cobra.Command{
	Use:   "threshold <percent>",
	Short: "Set the budget alert threshold (50-100)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsThreshold,
}

var settingsEnableCmd = &cobra.Command{
	Use:   "enable <category>",
	Short: "Include a category in plan generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategoryEnabled(args[0], true)
	},
}

var settingsDisableCmd = &cobra.Command{
	Use:   "disable <category>",
	Short: "Exclude a category from plan generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategoryEnabled(args[0], false)
	},
}

func init() {
	settingsCmd.AddCommand(settingsCurrencyCmd)
	settingsCmd.AddCommand(settingsReminderCmd)
	settingsCmd.AddCommand(settingsThresholdCmd)
	settingsCmd.AddCommand(settingsWeightCmd)
	settingsCmd.AddCommand(settingsEnableCmd)
	settingsCmd.AddCommand(settingsDisableCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	fmt.Printf("Currency: %s\n", prefs.Currency)
	fmt.Printf("Reminder frequency: %s\n", prefs.ReminderFrequency)
	fmt.Printf("Alert threshold: %d%%\n\n", prefs.BudgetThreshold)
	fmt.Println("Categories:")

	cats := make([]budget.Category, 0, len(prefs.Categories))
	for c := range prefs.Categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		return budget.DisplayName(cats[i]) < budget.DisplayName(cats[j])
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  CATEGORY\tPERCENT\tENABLED")
	for _, c := range cats {
		al := prefs.Categories[c]
		fmt.Fprintf(w, "  %s\t%.0f\t%t\n", budget.DisplayName(c), al.Percentage, al.Enabled)
	}
	return w.Flush()
}

func runSettingsCurrency(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := settings.SaveCurrency(a.kv, args[0]); err != nil {
		return err
	}
	fmt.Printf("Currency set to %s\n", args[0])
	return nil
}

func runSettingsReminder(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := settings.SaveReminderFrequency(a.kv, args[0]); err != nil {
		return err
	}
	fmt.Printf("Reminder frequency set to %s\n", args[0])
	return nil
}

func runSettingsThreshold(cmd *cobra.Command, args []string) error {
	threshold, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%q is not a number", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := settings.SaveBudgetThreshold(a.kv, threshold); err != nil {
		return err
	}
	fmt.Printf("Alert threshold set to %d%%\n", threshold)
	return nil
}

func runSettingsWeight(cmd *cobra.Command, args []string) error {
	pct, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", args[1])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	cat := budget.Category(args[0])
	al := prefs.Categories[cat]
	al.Percentage = pct
	prefs.Categories[cat] = al

	if err := settings.SaveWeights(a.kv, prefs.Categories); err != nil {
		return err
	}
	fmt.Printf("%s set to %.0f%%\n", budget.DisplayName(cat), pct)
	return nil
}

func setCategoryEnabled(name string, enabled bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prefs, err := a.settings()
	if err != nil {
		return err
	}

	cat := budget.Category(name)
	al := prefs.Categories[cat]
	al.Enabled = enabled
	prefs.Categories[cat] = al

	if err := settings.SaveWeights(a.kv, prefs.Categories); err != nil {
		return err
	}
	if enabled {
		fmt.Printf("%s enabled\n", budget.DisplayName(cat))
	} else {
		fmt.Printf("%s disabled\n", budget.DisplayName(cat))
	}
	return nil
}

// Package settings persists user preferences in the local store: the
// category weight table read by the allocation engine and the default display
// currency read by report views.
package settings

import (
	"errors"
	"fmt"

	"spendtrack/internal/budget"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/store"
	"spendtrack/internal/validator"
)

// Settings is the locally configurable preference set.
type Settings struct {
	Currency   string
	Categories budget.Weights

	// ReminderFrequency is how often budget reminders are delivered: daily,
	// weekly, monthly, or never.
	ReminderFrequency string

	// BudgetThreshold is the spent percentage of a budget at which an alert
	// fires, between 50 and 100.
	BudgetThreshold int
}

// Load reads preferences from the store, substituting defaults for anything
// unset.
func Load(kv *store.FileStore) (*Settings, error) {
	s := &Settings{
		Currency:          "USD",
		Categories:        budget.DefaultWeights(),
		ReminderFrequency: "weekly",
		BudgetThreshold:   80,
	}

	var currency string
	if err := kv.Get(store.KeyCurrency, &currency); err == nil {
		s.Currency = currency
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var weights budget.Weights
	if err := kv.Get(store.KeyCategories, &weights); err == nil {
		s.Categories = weights
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var frequency string
	if err := kv.Get(store.KeyReminder, &frequency); err == nil {
		s.ReminderFrequency = frequency
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	var threshold int
	if err := kv.Get(store.KeyThreshold, &threshold); err == nil {
		s.BudgetThreshold = threshold
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return s, nil
}

// SaveCurrency validates and persists the display currency.
func SaveCurrency(kv *store.FileStore, currency string) error {
	if err := validator.Get().Var(currency, "required,iso4217"); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%q is not a supported currency code", currency))
	}
	return kv.Put(store.KeyCurrency, currency)
}

// SaveWeights validates and persists the category weight table. Unknown
// categories and negative percentages are rejected; an all-disabled table is
// allowed here and rejected at generation time instead.
func SaveWeights(kv *store.FileStore, weights budget.Weights) error {
	for c, a := range weights {
		if !budget.IsValidCategory(c) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%q is not a budget category", c))
		}
		if a.Percentage < 0 {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("percentage for %q must not be negative", c))
		}
	}
	return kv.Put(store.KeyCategories, weights)
}

// SaveReminderFrequency validates and persists the reminder cadence.
func SaveReminderFrequency(kv *store.FileStore, frequency string) error {
	if err := validator.Get().Var(frequency, "required,oneof=daily weekly monthly never"); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%q is not a reminder frequency (daily, weekly, monthly, never)", frequency))
	}
	return kv.Put(store.KeyReminder, frequency)
}

// SaveBudgetThreshold validates and persists the alert threshold percentage.
func SaveBudgetThreshold(kv *store.FileStore, threshold int) error {
	if threshold < 50 || threshold > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "budget threshold must be between 50 and 100")
	}
	return kv.Put(store.KeyThreshold, threshold)
}

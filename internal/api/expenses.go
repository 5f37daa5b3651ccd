package api

import (
	"context"
	"fmt"
	"net/http"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
	"spendtrack/internal/validator"
)

// Expense is a single spending record owned by the backend.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // YYYY-MM-DD
}

// ExpenseInput is the create/update payload.
type ExpenseInput struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,expense_category"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// ExpensesService wraps the /expenses resource.
type ExpensesService struct {
	gw       Doer
	notifier notify.Notifier
}

// NewExpensesService creates an ExpensesService.
func NewExpensesService(gw Doer, notifier notify.Notifier) *ExpensesService {
	return &ExpensesService{gw: gw, notifier: notifier}
}

// List fetches all expenses.
func (s *ExpensesService) List(ctx context.Context) ([]Expense, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/expenses"})
	if err != nil {
		return nil, err
	}
	var expenses []Expense
	if err := decodeData(resp, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Get fetches one expense by ID.
func (s *ExpensesService) Get(ctx context.Context, id string) (*Expense, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/expenses/" + id})
	if err != nil {
		return nil, err
	}
	var expense Expense
	if err := decodeData(resp, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// Create adds a new expense.
func (s *ExpensesService) Create(ctx context.Context, input ExpenseInput) (*Expense, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/expenses", Body: input})
	if err != nil {
		return nil, err
	}
	var expense Expense
	if err := decodeData(resp, &expense); err != nil {
		return nil, err
	}
	s.notifier.Success("Expense added successfully")
	return &expense, nil
}

// Update replaces an existing expense.
func (s *ExpensesService) Update(ctx context.Context, id string, input ExpenseInput) (*Expense, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodPut, Path: "/expenses/" + id, Body: input})
	if err != nil {
		return nil, err
	}
	var expense Expense
	if err := decodeData(resp, &expense); err != nil {
		return nil, err
	}
	s.notifier.Success("Expense updated successfully")
	return &expense, nil
}

// Delete removes an expense.
func (s *ExpensesService) Delete(ctx context.Context, id string) error {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: "/expenses/" + id})
	if err != nil {
		return err
	}
	if err := decodeData(resp, nil); err != nil {
		return err
	}
	s.notifier.Success(fmt.Sprintf("Expense %s deleted", id))
	return nil
}

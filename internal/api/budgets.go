package api

import (
	"context"
	"net/http"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/gateway"
	"spendtrack/internal/notify"
	"spendtrack/internal/validator"
)

// Budget is a per-category budget record. PlanID and PlanName tie records
// generated in one batch together; both are empty for standalone budgets.
type Budget struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Period   string  `json:"period"`
	PlanID   string  `json:"planId,omitempty"`
	PlanName string  `json:"planName,omitempty"`
}

// BudgetInput is the create/update payload.
type BudgetInput struct {
	Name     string  `json:"name" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Category string  `json:"category" validate:"required,expense_category"`
	Period   string  `json:"period" validate:"required,budget_period"`
	PlanID   string  `json:"planId,omitempty"`
	PlanName string  `json:"planName,omitempty"`
}

// BudgetsService wraps the /budgets resource.
type BudgetsService struct {
	gw       Doer
	notifier notify.Notifier
}

// NewBudgetsService creates a BudgetsService.
func NewBudgetsService(gw Doer, notifier notify.Notifier) *BudgetsService {
	return &BudgetsService{gw: gw, notifier: notifier}
}

// List fetches all budgets.
func (s *BudgetsService) List(ctx context.Context) ([]Budget, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/budgets"})
	if err != nil {
		return nil, err
	}
	var budgets []Budget
	if err := decodeData(resp, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// Get fetches one budget by ID.
func (s *BudgetsService) Get(ctx context.Context, id string) (*Budget, error) {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/budgets/" + id})
	if err != nil {
		return nil, err
	}
	var budget Budget
	if err := decodeData(resp, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// Create adds a new budget record.
func (s *BudgetsService) Create(ctx context.Context, input BudgetInput) (*Budget, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodPost, Path: "/budgets", Body: input})
	if err != nil {
		return nil, err
	}
	var budget Budget
	if err := decodeData(resp, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// Update replaces an existing budget.
func (s *BudgetsService) Update(ctx context.Context, id string, input BudgetInput) (*Budget, error) {
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodPut, Path: "/budgets/" + id, Body: input})
	if err != nil {
		return nil, err
	}
	var budget Budget
	if err := decodeData(resp, &budget); err != nil {
		return nil, err
	}
	s.notifier.Success("Budget updated successfully")
	return &budget, nil
}

// Delete removes one budget record.
func (s *BudgetsService) Delete(ctx context.Context, id string) error {
	resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: "/budgets/" + id})
	if err != nil {
		return err
	}
	if err := decodeData(resp, nil); err != nil {
		return err
	}
	s.notifier.Success("Budget deleted successfully")
	return nil
}

// DeleteAll removes the given budgets one by one. There is no batch endpoint;
// the first failure stops the sweep and is returned.
func (s *BudgetsService) DeleteAll(ctx context.Context, budgets []Budget) error {
	for _, b := range budgets {
		resp, err := s.gw.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: "/budgets/" + b.ID})
		if err != nil {
			return err
		}
		if err := decodeData(resp, nil); err != nil {
			return err
		}
	}
	s.notifier.Success("All budgets deleted successfully")
	return nil
}

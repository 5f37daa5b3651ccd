package budget

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"spendtrack/internal/api"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/notify"
	"spendtrack/internal/uuid"
)

// RecordCreator persists a single budget record. Satisfied by
// *api.BudgetsService.
type RecordCreator interface {
	Create(ctx context.Context, input api.BudgetInput) (*api.Budget, error)
}

// GenerateResult describes the outcome of a plan generation.
type GenerateResult struct {
	PlanID   string
	PlanName string
	Records  []api.Budget
}

// Engine generates budget plans and persists them through the budgets
// resource.
type Engine struct {
	budgets  RecordCreator
	notifier notify.Notifier
	log      *zap.SugaredLogger
}

// NewEngine creates an Engine.
func NewEngine(budgets RecordCreator, notifier notify.Notifier, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{budgets: budgets, notifier: notifier, log: log}
}

// GeneratePlan distributes total across the enabled categories of weights and
// persists one monthly budget record per category, all sharing a fresh plan
// ID and the trimmed planName.
//
// Weights are normalized before application, so stored percentages need not
// sum to 100. Each amount is rounded half-up to cents independently; the
// generated amounts may differ from total by a few cents and this is
// accepted, not corrected.
//
// Generation is not atomic: records are created one by one with no rollback.
// When a create fails partway, the records already persisted remain and the
// returned error says how far generation got.
func (e *Engine) GeneratePlan(ctx context.Context, total float64, planName string, weights Weights) (*GenerateResult, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return nil, apperrors.ErrInvalidTotal
	}
	planName = strings.TrimSpace(planName)
	if planName == "" {
		return nil, apperrors.ErrEmptyPlanName
	}

	enabled := weights.enabled()
	if len(enabled) == 0 {
		return nil, apperrors.ErrNoCategories
	}

	var sum float64
	for _, c := range enabled {
		sum += weights[c].Percentage
	}

	planID := uuid.New()
	result := &GenerateResult{PlanID: planID, PlanName: planName}

	for i, c := range enabled {
		amount := roundCents(total * (weights[c].Percentage / sum))
		record, err := e.budgets.Create(ctx, api.BudgetInput{
			Name:     DisplayName(c),
			Amount:   amount,
			Category: string(c),
			Period:   "monthly",
			PlanID:   planID,
			PlanName: planName,
		})
		if err != nil {
			e.log.Errorw("plan generation failed partway",
				"plan_id", planID, "created", i, "total", len(enabled), "error", err)
			e.notifier.Error(fmt.Sprintf("Budget plan %q is incomplete: %d of %d records created", planName, i, len(enabled)))
			return result, fmt.Errorf("generating plan %q: created %d of %d records: %w", planName, i, len(enabled), err)
		}
		result.Records = append(result.Records, *record)
	}

	e.notifier.Success(fmt.Sprintf("Budget plan '%s' generated successfully!", planName))
	return result, nil
}

// roundCents rounds half-up to two decimal places.
func roundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

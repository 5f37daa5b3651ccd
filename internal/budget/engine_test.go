package budget

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"spendtrack/internal/api"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/notify"
	"spendtrack/internal/testutil"
)

// fakeCreator records every create and optionally fails at a given call.
type fakeCreator struct {
	calls  []api.BudgetInput
	failAt int // 1-based call number to fail at; 0 means never
}

func (f *fakeCreator) Create(ctx context.Context, input api.BudgetInput) (*api.Budget, error) {
	f.calls = append(f.calls, input)
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return nil, errors.New("backend rejected record")
	}
	return &api.Budget{
		ID:       fmt.Sprintf("b-%d", len(f.calls)),
		Name:     input.Name,
		Amount:   input.Amount,
		Category: input.Category,
		Period:   input.Period,
		PlanID:   input.PlanID,
		PlanName: input.PlanName,
	}, nil
}

func TestGeneratePlanDefaultWeights(t *testing.T) {
	creator := &fakeCreator{}
	recorder := notify.NewRecorder()
	engine := NewEngine(creator, recorder, nil)

	result, err := engine.GeneratePlan(context.Background(), 1000, "  May 2026 Budget  ", DefaultWeights())
	testutil.AssertNoError(t, err)

	if result.PlanName != "May 2026 Budget" {
		t.Errorf("expected trimmed plan name, got %q", result.PlanName)
	}
	if result.PlanID == "" {
		t.Fatal("expected a generated plan ID")
	}
	if len(result.Records) != 8 {
		t.Fatalf("expected 8 records, got %d", len(result.Records))
	}

	// Enabled categories are processed in display-name order.
	expected := map[string]float64{
		"education":      30,
		"entertainment":  100,
		"food":           250,
		"health":         50,
		"utilities":      350,
		"other":          20,
		"personal":       50,
		"transportation": 150,
	}
	for _, r := range result.Records {
		want, ok := expected[r.Category]
		if !ok {
			t.Errorf("unexpected category %q", r.Category)
			continue
		}
		if r.Amount != want {
			t.Errorf("category %q: expected amount %.2f, got %.2f", r.Category, want, r.Amount)
		}
		if r.PlanID != result.PlanID {
			t.Errorf("category %q: expected shared plan ID %q, got %q", r.Category, result.PlanID, r.PlanID)
		}
		if r.Period != "monthly" {
			t.Errorf("category %q: expected monthly period, got %q", r.Category, r.Period)
		}
	}

	events := recorder.Events()
	if len(events) != 1 || events[0].Level != "success" {
		t.Fatalf("expected one success notification, got %+v", events)
	}
	if !strings.Contains(events[0].Message, "May 2026 Budget") {
		t.Errorf("expected notification to name the plan, got %q", events[0].Message)
	}
}

func TestGeneratePlanNormalizesWeights(t *testing.T) {
	weights := Weights{
		CategoryFood:      {Enabled: true, Percentage: 1},
		CategoryUtilities: {Enabled: true, Percentage: 3},
	}
	engine := NewEngine(&fakeCreator{}, notify.NewRecorder(), nil)

	result, err := engine.GeneratePlan(context.Background(), 100, "Split", weights)
	testutil.AssertNoError(t, err)

	amounts := map[string]float64{}
	for _, r := range result.Records {
		amounts[r.Category] = r.Amount
	}
	if amounts["food"] != 25 || amounts["utilities"] != 75 {
		t.Errorf("expected 25/75 split, got %+v", amounts)
	}
}

func TestGeneratePlanRoundsEachAmountIndependently(t *testing.T) {
	weights := Weights{
		CategoryFood:      {Enabled: true, Percentage: 1},
		CategoryUtilities: {Enabled: true, Percentage: 1},
		CategoryHealth:    {Enabled: true, Percentage: 1},
	}
	engine := NewEngine(&fakeCreator{}, notify.NewRecorder(), nil)

	result, err := engine.GeneratePlan(context.Background(), 100, "Thirds", weights)
	testutil.AssertNoError(t, err)

	var sum float64
	for _, r := range result.Records {
		if r.Amount != 33.33 {
			t.Errorf("category %q: expected 33.33, got %.2f", r.Category, r.Amount)
		}
		sum += r.Amount
	}

	// Per-record rounding may drift from the total by up to a cent per record.
	if math.Abs(sum-100) > 0.01*float64(len(result.Records)) {
		t.Errorf("sum %.2f drifted beyond tolerance from total 100", sum)
	}
}

func TestGeneratePlanSkipsDisabledAndZeroWeightCategories(t *testing.T) {
	weights := Weights{
		CategoryFood:          {Enabled: true, Percentage: 50},
		CategoryUtilities:     {Enabled: false, Percentage: 50},
		CategoryEntertainment: {Enabled: true, Percentage: 0},
	}
	engine := NewEngine(&fakeCreator{}, notify.NewRecorder(), nil)

	result, err := engine.GeneratePlan(context.Background(), 200, "Solo", weights)
	testutil.AssertNoError(t, err)

	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}
	if result.Records[0].Category != "food" || result.Records[0].Amount != 200 {
		t.Errorf("expected food to receive the full total, got %+v", result.Records[0])
	}
}

func TestGeneratePlanRejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		planName string
		weights  Weights
		expected error
	}{
		{"zero total", 0, "Plan", DefaultWeights(), apperrors.ErrInvalidTotal},
		{"negative total", -50, "Plan", DefaultWeights(), apperrors.ErrInvalidTotal},
		{"NaN total", math.NaN(), "Plan", DefaultWeights(), apperrors.ErrInvalidTotal},
		{"infinite total", math.Inf(1), "Plan", DefaultWeights(), apperrors.ErrInvalidTotal},
		{"empty name", 100, "   ", DefaultWeights(), apperrors.ErrEmptyPlanName},
		{"no enabled categories", 100, "Plan", Weights{CategoryFood: {Enabled: false, Percentage: 25}}, apperrors.ErrNoCategories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{}
			engine := NewEngine(creator, notify.NewRecorder(), nil)

			_, err := engine.GeneratePlan(context.Background(), tt.total, tt.planName, tt.weights)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
			if len(creator.calls) != 0 {
				t.Errorf("expected no persistence for rejected input, got %d creates", len(creator.calls))
			}
		})
	}
}

func TestGeneratePlanPartialFailureKeepsCreatedRecords(t *testing.T) {
	creator := &fakeCreator{failAt: 5}
	recorder := notify.NewRecorder()
	engine := NewEngine(creator, recorder, nil)

	result, err := engine.GeneratePlan(context.Background(), 1000, "Partial", DefaultWeights())
	if err == nil {
		t.Fatal("expected an error when a create fails partway")
	}
	if !strings.Contains(err.Error(), "created 4 of 8") {
		t.Errorf("expected error to report progress, got %v", err)
	}

	// No rollback: records created before the failure survive.
	if len(result.Records) != 4 {
		t.Errorf("expected 4 surviving records, got %d", len(result.Records))
	}
	if len(creator.calls) != 5 {
		t.Errorf("expected 5 create attempts, got %d", len(creator.calls))
	}

	events := recorder.Events()
	if len(events) != 1 || events[0].Level != "error" {
		t.Fatalf("expected one error notification, got %+v", events)
	}
}

package budget

import (
	"testing"
	"time"

	"spendtrack/internal/api"
)

func TestGroupPlansBucketsByInferredMonth(t *testing.T) {
	budgets := []api.Budget{
		{ID: "1", Amount: 250, Category: "food", PlanID: "p1", PlanName: "May 2025 Budget"},
		{ID: "2", Amount: 350, Category: "utilities", PlanID: "p1", PlanName: "May 2025 Budget"},
		{ID: "3", Amount: 100, Category: "entertainment", PlanID: "p2", PlanName: "2024 December Savings"},
		{ID: "4", Amount: 75, Category: "health", PlanID: "p3", PlanName: "Misc Plan"},
		{ID: "5", Amount: 500, Category: "other"}, // standalone, no plan
	}

	groups := GroupPlans(budgets)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	if groups[0].Month != time.May || groups[0].Year != 2025 {
		t.Errorf("expected first group May 2025, got %s", groups[0].Label())
	}
	if groups[1].Month != time.December || groups[1].Year != 2024 {
		t.Errorf("expected second group December 2024, got %s", groups[1].Label())
	}
	if groups[2].Month != 0 {
		t.Errorf("expected catch-all group last, got %s", groups[2].Label())
	}
	if groups[2].Label() != "Other" {
		t.Errorf("expected label Other, got %q", groups[2].Label())
	}

	mayPlans := groups[0].Plans
	if len(mayPlans) != 1 {
		t.Fatalf("expected 1 plan in May 2025, got %d", len(mayPlans))
	}
	if mayPlans[0].Total != 600 {
		t.Errorf("expected plan total 600, got %.2f", mayPlans[0].Total)
	}
	// Members sort by display name: Food & Dining before Housing & Utilities.
	if mayPlans[0].Budgets[0].Category != "food" || mayPlans[0].Budgets[1].Category != "utilities" {
		t.Errorf("expected members ordered by display name, got %+v", mayPlans[0].Budgets)
	}
}

func TestGroupPlansOrdersYearsDescending(t *testing.T) {
	budgets := []api.Budget{
		{ID: "1", Amount: 10, Category: "food", PlanID: "a", PlanName: "March 2024 Plan"},
		{ID: "2", Amount: 10, Category: "food", PlanID: "b", PlanName: "January 2025 Plan"},
		{ID: "3", Amount: 10, Category: "food", PlanID: "c", PlanName: "June 2025 Plan"},
	}

	groups := GroupPlans(budgets)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	labels := []string{groups[0].Label(), groups[1].Label(), groups[2].Label()}
	expected := []string{"January 2025", "June 2025", "March 2024"}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("group %d: expected %q, got %q", i, expected[i], labels[i])
		}
	}
}

func TestInferMonthYear(t *testing.T) {
	currentYear := time.Now().Year()
	tests := []struct {
		name  string
		month time.Month
		year  int
	}{
		{"May 2025 Budget", time.May, 2025},
		{"2024 December Savings", time.December, 2024},
		{"budget for march", time.March, currentYear},
		{"January and June trip fund", time.January, currentYear},
		{"Misc Plan", 0, 0},
		{"", 0, 0},
	}

	for _, tt := range tests {
		month, year := inferMonthYear(tt.name)
		if month != tt.month || year != tt.year {
			t.Errorf("inferMonthYear(%q) = %v %d, want %v %d", tt.name, month, year, tt.month, tt.year)
		}
	}
}

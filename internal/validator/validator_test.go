package validator

import "testing"

func TestISO4217Tag(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"USD", true},
		{"EUR", true},
		{"JPY", true},
		{"usd", false},
		{"XXX", false},
		{"", false},
	}
	for _, tt := range tests {
		err := Get().Var(tt.code, "iso4217")
		if (err == nil) != tt.valid {
			t.Errorf("iso4217(%q): expected valid=%t, got err=%v", tt.code, tt.valid, err)
		}
	}
}

func TestExpenseCategoryTag(t *testing.T) {
	for _, c := range []string{"food", "utilities", "transportation", "entertainment", "personal", "health", "education", "other"} {
		if err := Get().Var(c, "expense_category"); err != nil {
			t.Errorf("expected %q to be a valid category: %v", c, err)
		}
	}
	for _, c := range []string{"Food", "groceries", ""} {
		if err := Get().Var(c, "expense_category"); err == nil {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}

func TestBudgetPeriodTag(t *testing.T) {
	for _, p := range []string{"weekly", "monthly", "quarterly", "yearly"} {
		if err := Get().Var(p, "budget_period"); err != nil {
			t.Errorf("expected %q to be a valid period: %v", p, err)
		}
	}
	if err := Get().Var("daily", "budget_period"); err == nil {
		t.Error("expected daily to be rejected")
	}
}

func TestStructValidation(t *testing.T) {
	type budgetInput struct {
		Name     string  `validate:"required"`
		Amount   float64 `validate:"required,gte=0"`
		Category string  `validate:"required,expense_category"`
		Period   string  `validate:"required,budget_period"`
	}

	valid := budgetInput{Name: "Food & Dining", Amount: 250, Category: "food", Period: "monthly"}
	if err := Get().Struct(valid); err != nil {
		t.Errorf("expected valid input to pass: %v", err)
	}

	invalid := budgetInput{Name: "Food & Dining", Amount: 250, Category: "snacks", Period: "monthly"}
	if err := Get().Struct(invalid); err == nil {
		t.Error("expected unknown category to fail struct validation")
	}
}

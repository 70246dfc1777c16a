package domain

import "testing"

func TestBudgetStatus(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"zero", 0, BudgetOnTrack},
		{"just below warning", 79.9, BudgetOnTrack},
		{"warning threshold", 80, BudgetWarning},
		{"inside warning band", 99.99, BudgetWarning},
		{"exceeded threshold", 100, BudgetExceeded},
		{"far over", 250, BudgetExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BudgetStatus(tt.pct); got != tt.want {
				t.Errorf("BudgetStatus(%v) = %q, want %q", tt.pct, got, tt.want)
			}
		})
	}
}

func TestSummarizeBudgets(t *testing.T) {
	budgets := []Budget{
		{Amount: 500, Spent: 100, PercentageUsed: 20},
		{Amount: 200, Spent: 170, PercentageUsed: 85},
		{Amount: 100, Spent: 150, PercentageUsed: 150},
	}
	got := SummarizeBudgets(budgets)
	if got.Budgeted != 800 {
		t.Errorf("Budgeted = %v, want 800", got.Budgeted)
	}
	if got.Spent != 420 {
		t.Errorf("Spent = %v, want 420", got.Spent)
	}
	if got.OnTrack != 1 {
		t.Errorf("OnTrack = %d, want 1", got.OnTrack)
	}
	if got.Exceeded != 1 {
		t.Errorf("Exceeded = %d, want 1", got.Exceeded)
	}
}

func TestSummarizeBudgetsEmpty(t *testing.T) {
	got := SummarizeBudgets(nil)
	if got != (BudgetTotals{}) {
		t.Errorf("SummarizeBudgets(nil) = %+v, want zero value", got)
	}
}

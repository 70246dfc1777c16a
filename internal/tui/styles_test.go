package tui

import (
	"strings"
	"testing"

	"github.com/naveenspark/financeflow/pkg/domain"
)

func TestProgressBarWidth(t *testing.T) {
	tests := []struct {
		pct        float64
		wantFilled int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{250, 10},
		{-5, 0},
	}
	for _, tc := range tests {
		bar := progressBar(tc.pct, 10, incomeStyle)
		if got := strings.Count(bar, "█"); got != tc.wantFilled {
			t.Errorf("progressBar(%v) filled = %d, want %d", tc.pct, got, tc.wantFilled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("progressBar(%v) width = %d, want 10", tc.pct, got)
		}
	}
}

func TestBudgetStyleRendersEachStatus(t *testing.T) {
	for _, status := range []string{domain.BudgetOnTrack, domain.BudgetWarning, domain.BudgetExceeded, "unknown"} {
		if rendered := budgetStyle(status).Render(status); !strings.Contains(rendered, status) {
			t.Errorf("budgetStyle(%q) did not render text: %q", status, rendered)
		}
	}
}

func TestHelpBar(t *testing.T) {
	got := helpBar("q", "quit", "r", "refresh")
	for _, want := range []string{"q", "quit", "r", "refresh"} {
		if !strings.Contains(got, want) {
			t.Errorf("helpBar missing %q: %q", want, got)
		}
	}
	if got := helpBar("dangling"); strings.TrimSpace(got) != "" {
		t.Errorf("helpBar with odd args = %q", got)
	}
}

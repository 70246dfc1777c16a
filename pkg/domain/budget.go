package domain

// Budget thresholds, as percentages of the budgeted amount.
const (
	BudgetWarningPct  = 80
	BudgetExceededPct = 100
)

// Budget status values.
const (
	BudgetOnTrack  = "on-track"
	BudgetWarning  = "warning"
	BudgetExceeded = "exceeded"
)

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID             int64   `json:"id"`
	CategoryID     int64   `json:"categoryId"`
	CategoryName   string  `json:"categoryName,omitempty"`
	Amount         Money   `json:"amount"`
	Spent          Money   `json:"spent"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	PercentageUsed float64 `json:"percentageUsed"`
}

// BudgetInput is the create/update payload for a budget.
type BudgetInput struct {
	CategoryID int64   `json:"categoryId" validate:"gt=0"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	Month      int     `json:"month" validate:"min=1,max=12"`
	Year       int     `json:"year" validate:"min=2000,max=2100"`
}

// BudgetStatus classifies a usage percentage.
func BudgetStatus(pct float64) string {
	switch {
	case pct >= BudgetExceededPct:
		return BudgetExceeded
	case pct >= BudgetWarningPct:
		return BudgetWarning
	default:
		return BudgetOnTrack
	}
}

// Status returns the budget's status.
func (b Budget) Status() string {
	return BudgetStatus(b.PercentageUsed)
}

// BudgetTotals aggregates a set of budgets for the overview header.
type BudgetTotals struct {
	Budgeted float64
	Spent    float64
	OnTrack  int
	Exceeded int
}

// SummarizeBudgets totals budgets and counts them by status. A budget in the
// warning band counts as neither on track nor exceeded.
func SummarizeBudgets(budgets []Budget) BudgetTotals {
	var t BudgetTotals
	for _, b := range budgets {
		t.Budgeted += b.Amount.Float()
		t.Spent += b.Spent.Float()
		switch {
		case b.PercentageUsed < BudgetWarningPct:
			t.OnTrack++
		case b.PercentageUsed >= BudgetExceededPct:
			t.Exceeded++
		}
	}
	return t
}

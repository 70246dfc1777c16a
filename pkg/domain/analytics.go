package domain

import "sort"

// MonthlyTrend is income and expenses for one month.
type MonthlyTrend struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Income    Money  `json:"income"`
	Expenses  Money  `json:"expenses"`
	Net       Money  `json:"net"`
}

// CategoryTrend is the amount spent in one category in one month.
type CategoryTrend struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	MonthName    string `json:"monthName,omitempty"`
	CategoryName string `json:"categoryName"`
	Amount       Money  `json:"amount"`
}

// SpendingMonth is one entry of the top spending months ranking.
type SpendingMonth struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	MonthName  string `json:"monthName"`
	TotalSpent Money  `json:"totalSpent"`
}

// CategoryMonth is a pivoted row: per-category amounts for one month.
type CategoryMonth struct {
	Year      int
	Month     int
	MonthName string
	Amounts   map[string]float64
}

// PivotCategoryTrends groups flat category rows into one row per month,
// ordered by year then month, and returns the distinct category names in
// first-seen order.
func PivotCategoryTrends(trends []CategoryTrend) ([]CategoryMonth, []string) {
	byKey := make(map[[2]int]*CategoryMonth)
	var categories []string
	seen := make(map[string]bool)

	for _, t := range trends {
		key := [2]int{t.Year, t.Month}
		row, ok := byKey[key]
		if !ok {
			row = &CategoryMonth{Year: t.Year, Month: t.Month, MonthName: t.MonthName, Amounts: make(map[string]float64)}
			byKey[key] = row
		}
		row.Amounts[t.CategoryName] = t.Amount.Float()
		if !seen[t.CategoryName] {
			seen[t.CategoryName] = true
			categories = append(categories, t.CategoryName)
		}
	}

	rows := make([]CategoryMonth, 0, len(byKey))
	for _, r := range byKey {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows, categories
}

// TrendTotals sums income and expenses over a set of monthly trends.
func TrendTotals(trends []MonthlyTrend) (income, expenses float64) {
	for _, t := range trends {
		income += t.Income.Float()
		expenses += t.Expenses.Float()
	}
	return income, expenses
}

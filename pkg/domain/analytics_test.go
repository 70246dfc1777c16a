package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotCategoryTrends(t *testing.T) {
	trends := []CategoryTrend{
		{Year: 2026, Month: 2, CategoryName: "Food", Amount: 300},
		{Year: 2025, Month: 12, CategoryName: "Rent", Amount: 1200},
		{Year: 2026, Month: 2, CategoryName: "Rent", Amount: 1200},
		{Year: 2026, Month: 1, CategoryName: "Food", Amount: 250},
	}

	rows, cats := PivotCategoryTrends(trends)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Food", "Rent"}, cats)

	assert.Equal(t, 2025, rows[0].Year)
	assert.Equal(t, 12, rows[0].Month)
	assert.Equal(t, 1, rows[1].Month)
	assert.Equal(t, 2, rows[2].Month)
	assert.Equal(t, map[string]float64{"Food": 300, "Rent": 1200}, rows[2].Amounts)
}

func TestPivotCategoryTrendsEmpty(t *testing.T) {
	rows, cats := PivotCategoryTrends(nil)
	assert.Empty(t, rows)
	assert.Empty(t, cats)
}

func TestTrendTotals(t *testing.T) {
	income, expenses := TrendTotals([]MonthlyTrend{
		{Income: 1000, Expenses: 400},
		{Income: 1500, Expenses: 900},
	})
	assert.Equal(t, 2500.0, income)
	assert.Equal(t, 1300.0, expenses)
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

// Periods requested from the analytics endpoints.
const (
	trendMonths    = 6
	topMonthsLimit = 5
)

type analyticsLoadedMsg struct {
	scope
	trends     []domain.MonthlyTrend
	categories []domain.CategoryTrend
	top        []domain.SpendingMonth
	err        error
}

type analyticsModel struct {
	client     *client.Client
	gen        int
	trends     []domain.MonthlyTrend
	rows       []domain.CategoryMonth
	categories []string
	top        []domain.SpendingMonth
	err        string
}

func newAnalyticsModel(c *client.Client, gen int) analyticsModel {
	return analyticsModel{client: c, gen: gen}
}

func (m analyticsModel) Init() tea.Cmd {
	c, gen := m.client, m.gen
	return func() tea.Msg {
		ctx := context.Background()
		trends, err := c.MonthlyTrends(ctx, trendMonths)
		if err != nil {
			return analyticsLoadedMsg{scope: scope{gen}, err: err}
		}
		cats, err := c.CategoryTrends(ctx, trendMonths)
		if err != nil {
			return analyticsLoadedMsg{scope: scope{gen}, err: err}
		}
		top, err := c.TopSpendingMonths(ctx, topMonthsLimit)
		if err != nil {
			return analyticsLoadedMsg{scope: scope{gen}, err: err}
		}
		return analyticsLoadedMsg{scope: scope{gen}, trends: trends, categories: cats, top: top}
	}
}

func (m analyticsModel) Update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	if msg, ok := msg.(analyticsLoadedMsg); ok {
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.trends = msg.trends
		m.rows, m.categories = domain.PivotCategoryTrends(msg.categories)
		m.top = msg.top
	}
	return m, nil
}

func monthLabel(name string, month, year int) string {
	if r := []rune(name); len(r) > 0 {
		return fmt.Sprintf("%s %d", string(r[:min(3, len(r))]), year)
	}
	return fmt.Sprintf("%02d/%d", month, year)
}

func (m analyticsModel) View() string {
	if m.err != "" {
		return "\n  " + errorStyle.Render("Could not load analytics: "+m.err) + "\n"
	}
	var b strings.Builder

	income, expenses := domain.TrendTotals(m.trends)
	fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render(fmt.Sprintf("Last %d months", trendMonths)))
	fmt.Fprintf(&b, "  %s %s   %s %s\n\n",
		dimStyle.Render("Income"), incomeStyle.Render(formatCurrency(income)),
		dimStyle.Render("Expenses"), expenseStyle.Render(formatCurrency(expenses)))

	var maxVal float64
	for _, t := range m.trends {
		maxVal = max(maxVal, t.Income.Float(), t.Expenses.Float())
	}
	pct := func(v float64) float64 {
		if maxVal == 0 {
			return 0
		}
		return v / maxVal * 100
	}
	for _, t := range m.trends {
		fmt.Fprintf(&b, "  %s %s %s\n  %s %s %s\n",
			normalStyle.Render(padRight(monthLabel(t.MonthName, t.Month, t.Year), 10)),
			progressBar(pct(t.Income.Float()), 24, incomeStyle),
			incomeStyle.Render(formatCurrency(t.Income.Float())),
			strings.Repeat(" ", 10),
			progressBar(pct(t.Expenses.Float()), 24, expenseStyle),
			expenseStyle.Render(formatCurrency(t.Expenses.Float())))
	}

	if len(m.rows) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Spending by category") + "\n")
		header := padRight("", 10)
		for _, c := range m.categories {
			header += " " + padRight(c, 12)
		}
		b.WriteString("  " + metaStyle.Render(header) + "\n")
		for _, r := range m.rows {
			line := padRight(monthLabel(r.MonthName, r.Month, r.Year), 10)
			for _, c := range m.categories {
				line += " " + padRight(formatCurrency(r.Amounts[c]), 12)
			}
			b.WriteString("  " + normalStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Top spending months") + "\n")
	if len(m.top) == 0 {
		b.WriteString("  " + dimStyle.Render("Not enough data yet.") + "\n")
	}
	for i, t := range m.top {
		fmt.Fprintf(&b, "  %s %s %s\n",
			metaStyle.Render(fmt.Sprintf("%d.", i+1)),
			normalStyle.Render(padRight(monthLabel(t.MonthName, t.Month, t.Year), 10)),
			expenseStyle.Render(formatCurrency(t.TotalSpent.Float())))
	}
	return b.String()
}

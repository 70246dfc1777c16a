package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

// dashboardLoadedMsg carries accounts, the income/expense summary and the
// spending breakdown.
type dashboardLoadedMsg struct {
	scope
	accounts []domain.Account
	summary  *domain.TransactionSummary
	spending []domain.CategorySpending
	err      error
}

type dashboardModel struct {
	client   *client.Client
	gen      int
	accounts []domain.Account
	summary  domain.TransactionSummary
	spending []domain.CategorySpending
	err      string
	loadedAt time.Time
	width    int
	height   int
}

func newDashboardModel(c *client.Client, gen int) dashboardModel {
	return dashboardModel{client: c, gen: gen}
}

func (m dashboardModel) Init() tea.Cmd {
	c, gen := m.client, m.gen
	return func() tea.Msg {
		ctx := context.Background()
		accounts, err := c.ListAccounts(ctx)
		if err != nil {
			return dashboardLoadedMsg{scope: scope{gen}, err: err}
		}
		summary, err := c.GetTransactionSummary(ctx)
		if err != nil {
			return dashboardLoadedMsg{scope: scope{gen}, err: err}
		}
		// The breakdown is optional; an empty ledger may have none.
		spending, err := c.GetSpendingByCategory(ctx)
		if err != nil && !client.IsStatus(err, http.StatusNotFound) {
			return dashboardLoadedMsg{scope: scope{gen}, err: err}
		}
		return dashboardLoadedMsg{scope: scope{gen}, accounts: accounts, summary: summary, spending: spending}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case dashboardLoadedMsg:
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.loadedAt = time.Now()
		m.accounts = msg.accounts
		if msg.summary != nil {
			m.summary = *msg.summary
		}
		m.spending = msg.spending
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.err != "" {
		return "\n  " + errorStyle.Render("Could not load dashboard: "+m.err) + "\n"
	}

	var b strings.Builder
	total := domain.TotalBalance(m.accounts)
	fmt.Fprintf(&b, "\n  %s  %s", sectionHeaderStyle.Render("Total balance"), amountStyle(total).Bold(true).Render(formatCurrency(total)))
	if !m.loadedAt.IsZero() {
		b.WriteString("  " + metaStyle.Render("updated "+formatTime(m.loadedAt)))
	}
	b.WriteString("\n\n")

	net := m.summary.Net()
	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s\n",
		dimStyle.Render("Income"), incomeStyle.Render(formatCurrency(m.summary.TotalIncome.Float())),
		dimStyle.Render("Expenses"), expenseStyle.Render(formatCurrency(m.summary.TotalExpenses.Float())),
		dimStyle.Render("Net"), amountStyle(net).Render(formatCurrency(net)))

	b.WriteString("\n  " + sectionHeaderStyle.Render("Spending by category") + "\n")
	if len(m.spending) == 0 {
		b.WriteString("  " + dimStyle.Render("No spending recorded yet.") + "\n")
	}
	var maxSpent float64
	for _, s := range m.spending {
		if v := s.TotalAmount.Float(); v > maxSpent {
			maxSpent = v
		}
	}
	for _, s := range m.spending {
		pct := 0.0
		if maxSpent > 0 {
			pct = s.TotalAmount.Float() / maxSpent * 100
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			normalStyle.Render(padRight(s.CategoryName, 18)),
			progressBar(pct, 20, expenseStyle),
			dimStyle.Render(formatCurrency(s.TotalAmount.Float())))
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Accounts") + "\n")
	if len(m.accounts) == 0 {
		b.WriteString("  " + dimStyle.Render("No accounts yet. Press 2 to add one.") + "\n")
	}
	for _, a := range m.accounts {
		fmt.Fprintf(&b, "  %s %s %s\n",
			normalStyle.Render(padRight(a.Name, 22)),
			metaStyle.Render(padRight(domain.AccountTypeName(a.Type), 12)),
			amountStyle(a.Balance.Float()).Render(formatCurrency(a.Balance.Float())))
	}
	return b.String()
}

package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

func TestDashboardRendersTotals(t *testing.T) {
	m := newDashboardModel(nil, 0)
	m, _ = m.Update(dashboardLoadedMsg{
		accounts: []domain.Account{
			{Name: "Everyday", Type: domain.AccountChecking, Balance: 1200},
			{Name: "Rainy day", Type: domain.AccountSavings, Balance: 34.56},
		},
		summary:  &domain.TransactionSummary{TotalIncome: 3000, TotalExpenses: 1250.5},
		spending: []domain.CategorySpending{{CategoryName: "Groceries", TotalAmount: 420}},
	})
	out := m.View()
	for _, want := range []string{"$1,234.56", "$3,000.00", "$1,250.50", "$1,749.50", "Groceries", "Everyday", "Savings"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}

func TestDashboardShowsLoadError(t *testing.T) {
	m := newDashboardModel(nil, 0)
	m, _ = m.Update(dashboardLoadedMsg{err: &client.HTTPError{StatusCode: 500, Message: "database unavailable"}})
	if !strings.Contains(m.View(), "database unavailable") {
		t.Errorf("expected server message in view, got %q", m.View())
	}
}

func TestTransactionsScroll(t *testing.T) {
	m := newTransactionsModel(nil, 0)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 9})
	var txs []domain.Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, domain.Transaction{ID: int64(i), Amount: 5, Type: domain.Debit, TransactionDate: "2024-03-05"})
	}
	m, _ = m.Update(transactionsLoadedMsg{transactions: txs})

	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyRunes("j"))
	}
	if m.cursor != 5 {
		t.Errorf("expected cursor=5, got %d", m.cursor)
	}
	if m.offset != 3 {
		t.Errorf("expected offset=3 with 3 visible rows, got %d", m.offset)
	}
	m, _ = m.Update(keyRunes("G"))
	if m.cursor != 9 {
		t.Errorf("expected cursor at end, got %d", m.cursor)
	}
	m, _ = m.Update(keyRunes("g"))
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("expected top, got cursor=%d offset=%d", m.cursor, m.offset)
	}
}

func TestTransactionsSignedAmounts(t *testing.T) {
	m := newTransactionsModel(nil, 0)
	m, _ = m.Update(transactionsLoadedMsg{transactions: []domain.Transaction{
		{Description: "Salary", Amount: 2500, Type: domain.Credit, TransactionDate: "2024-03-01"},
		{Description: "Coffee", Amount: 4.5, Type: domain.Debit, TransactionDate: "2024-03-02"},
	}})
	out := m.View()
	for _, want := range []string{"$2,500.00", "-$4.50", "Mar 1, 2024", "Coffee"} {
		if !strings.Contains(out, want) {
			t.Errorf("transactions view missing %q", want)
		}
	}
}

func TestBudgetsView(t *testing.T) {
	m := newBudgetsModel(nil, 0)
	m, _ = m.Update(budgetsLoadedMsg{budgets: []domain.Budget{
		{CategoryName: "Dining", Amount: 200, Spent: 250, PercentageUsed: 125},
		{CategoryName: "Groceries", Amount: 400, Spent: 100, PercentageUsed: 25},
	}})
	out := m.View()
	for _, want := range []string{"Dining", "125.0%", "$250.00 / $200.00", "$600.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("budgets view missing %q", want)
		}
	}
}

func TestAnalyticsPivotsCategories(t *testing.T) {
	m := newAnalyticsModel(nil, 0)
	m, _ = m.Update(analyticsLoadedMsg{
		trends: []domain.MonthlyTrend{{Year: 2024, Month: 1, MonthName: "January", Income: 100, Expenses: 50}},
		categories: []domain.CategoryTrend{
			{Year: 2024, Month: 2, CategoryName: "Food", Amount: 20},
			{Year: 2024, Month: 1, CategoryName: "Food", Amount: 10},
			{Year: 2024, Month: 1, CategoryName: "Rent", Amount: 900},
		},
		top: []domain.SpendingMonth{{Year: 2024, Month: 1, MonthName: "January", TotalSpent: 910}},
	})
	if len(m.rows) != 2 || m.rows[0].Month != 1 {
		t.Fatalf("expected two rows ordered by month, got %+v", m.rows)
	}
	out := m.View()
	for _, want := range []string{"Jan 2024", "$900.00", "$910.00", "Rent"} {
		if !strings.Contains(out, want) {
			t.Errorf("analytics view missing %q", want)
		}
	}
}

func TestAdvisorSendAndReply(t *testing.T) {
	m := newAdvisorModel(nil, 0)
	m, _ = m.Update(keyRunes("Where does my money go?"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected chat command")
	}
	if !m.waiting || m.input != "" {
		t.Errorf("expected waiting with cleared input, got waiting=%v input=%q", m.waiting, m.input)
	}
	if len(m.messages) != 1 || m.messages[0].Role != domain.RoleUser {
		t.Fatalf("expected user message recorded, got %+v", m.messages)
	}

	// A second enter while waiting sends nothing.
	m, _ = m.Update(keyRunes("again"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no second request while waiting")
	}

	m, _ = m.Update(chatReplyMsg{reply: "Mostly dining out."})
	if reply, ok := m.lastReply(); !ok || reply != "Mostly dining out." {
		t.Errorf("lastReply = %q, %v", reply, ok)
	}
}

func TestAdvisorCopyLastReply(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error { copied = s; return nil }
	defer func() { clipboardWrite = orig }()

	m := newAdvisorModel(nil, 0)
	m.inputFocused = false
	m, _ = m.Update(keyRunes("y"))
	if m.statusMsg != "nothing to copy yet" {
		t.Errorf("expected nothing-to-copy status, got %q", m.statusMsg)
	}

	m, _ = m.Update(chatReplyMsg{reply: "Save 10% of income."})
	m, cmd := m.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	m, _ = m.Update(cmd())
	if copied != "Save 10% of income." {
		t.Errorf("copied %q", copied)
	}
	if m.statusMsg != "copied to clipboard" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestAdvisorSuggestion(t *testing.T) {
	m := newAdvisorModel(nil, 0)
	m.inputFocused = false
	m, _ = m.Update(keyRunes("s"))
	if m.input != domain.SuggestedQuestions[0] || !m.inputFocused {
		t.Errorf("expected first suggestion in focused input, got %q", m.input)
	}
}

func TestAdvisorReplyError(t *testing.T) {
	m := newAdvisorModel(nil, 0)
	m.waiting = true
	m, _ = m.Update(chatReplyMsg{err: errors.New("timeout")})
	if m.waiting {
		t.Error("expected waiting cleared")
	}
	if !strings.Contains(m.statusMsg, "timeout") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestDateLabel(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)
	if got := dateLabel("2024-03-05", now); got != "Today" {
		t.Errorf("dateLabel(today) = %q", got)
	}
	if got := dateLabel("2024-03-04", now); got != "Mar 4, 2024" {
		t.Errorf("dateLabel(yesterday) = %q", got)
	}
}

func TestDashboardShowsUpdated(t *testing.T) {
	m := newDashboardModel(nil, 0)
	m, _ = m.Update(dashboardLoadedMsg{summary: &domain.TransactionSummary{}})
	if !strings.Contains(m.View(), "updated just now") {
		t.Error("expected refresh time in dashboard")
	}
}

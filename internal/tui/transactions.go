package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

// transactionsLoadedMsg carries the ledger plus the accounts and categories
// the add form picks from.
type transactionsLoadedMsg struct {
	scope
	transactions []domain.Transaction
	accounts     []domain.Account
	categories   []domain.Category
	err          error
}

// Transaction form fields.
const (
	txDate = iota
	txDescription
	txAmount
	txType
	txAccount
	txCategory
)

// Filter form fields.
const (
	filterFrom = iota
	filterTo
)

type transactionsModel struct {
	client       *client.Client
	gen          int
	transactions []domain.Transaction
	accounts     []domain.Account
	categories   []domain.Category
	from, to     string
	filtering    bool
	cursor       int
	offset       int
	err          string
	ed           editor
	width        int
	height       int
}

func newTransactionsModel(c *client.Client, gen int) transactionsModel {
	return transactionsModel{client: c, gen: gen}
}

func (m transactionsModel) Init() tea.Cmd {
	c, gen := m.client, m.gen
	return func() tea.Msg {
		ctx := context.Background()
		txs, err := c.ListTransactions(ctx)
		if err != nil {
			return transactionsLoadedMsg{scope: scope{gen}, err: err}
		}
		accounts, err := c.ListAccounts(ctx)
		if err != nil {
			return transactionsLoadedMsg{scope: scope{gen}, err: err}
		}
		cats, err := c.ListCategories(ctx, "")
		if err != nil {
			return transactionsLoadedMsg{scope: scope{gen}, err: err}
		}
		return transactionsLoadedMsg{scope: scope{gen}, transactions: txs, accounts: accounts, categories: cats}
	}
}

// visible returns the transactions inside the date filter.
func (m transactionsModel) visible() []domain.Transaction {
	if m.from == "" && m.to == "" {
		return m.transactions
	}
	var out []domain.Transaction
	for _, t := range m.transactions {
		if t.InDateRange(m.from, m.to) {
			out = append(out, t)
		}
	}
	return out
}

// visibleRows is the number of list rows that fit below the header.
func (m transactionsModel) visibleRows() int {
	if m.height <= 6 {
		return 10
	}
	return m.height - 6
}

func (m transactionsModel) selected() (domain.Transaction, bool) {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return domain.Transaction{}, false
	}
	return rows[m.cursor], true
}

func (m *transactionsModel) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m transactionsModel) transactionFields(t domain.Transaction) []field {
	date := t.TransactionDate
	if len(date) > len("2006-01-02") {
		date = date[:len("2006-01-02")]
	}
	if date == "" {
		date = formatDateForInput(time.Now())
	}
	typ := string(t.Type)
	if typ == "" {
		typ = string(domain.Debit)
	}
	amount := ""
	if t.ID != 0 {
		amount = fmt.Sprintf("%.2f", t.Amount.Float())
	}
	account := t.AccountName
	switch {
	case account == "" && t.AccountID != 0:
		account = strconv.FormatInt(t.AccountID, 10)
	case account == "" && len(m.accounts) > 0:
		account = m.accounts[0].Name
	}
	category := t.CategoryName
	switch {
	case category == "" && t.CategoryID != 0:
		category = strconv.FormatInt(t.CategoryID, 10)
	case category == "" && len(m.categories) > 0:
		category = m.categories[0].Name
	}
	return []field{
		{label: "Date", value: date, placeholder: "2006-01-02"},
		{label: "Description", value: t.Description, placeholder: "Weekly groceries"},
		{label: "Amount", value: amount, placeholder: "0.00"},
		{label: "Type", value: typ, placeholder: "DEBIT or CREDIT"},
		{label: "Account", value: account, placeholder: "account name or id"},
		{label: "Category", value: category, placeholder: "category name or id"},
	}
}

// input reads and validates the open transaction form.
func (m transactionsModel) input() (domain.TransactionInput, error) {
	f := m.ed.form
	amount, err := parseAmount(f.value(txAmount))
	if err != nil {
		return domain.TransactionInput{}, err
	}
	typ, ok := domain.ParseTransactionType(f.value(txType))
	if !ok {
		return domain.TransactionInput{}, errors.New("Type must be DEBIT or CREDIT")
	}
	accountID, ok := lookupID(f.value(txAccount), m.accounts,
		func(a domain.Account) int64 { return a.ID },
		func(a domain.Account) string { return a.Name })
	if !ok {
		return domain.TransactionInput{}, fmt.Errorf("No account named %q", strings.TrimSpace(f.value(txAccount)))
	}
	categoryID, ok := lookupID(f.value(txCategory), m.categories,
		func(c domain.Category) int64 { return c.ID },
		func(c domain.Category) string { return c.Name })
	if !ok {
		return domain.TransactionInput{}, fmt.Errorf("No category named %q", strings.TrimSpace(f.value(txCategory)))
	}
	in := domain.TransactionInput{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Type:            typ,
		Description:     strings.TrimSpace(f.value(txDescription)),
		TransactionDate: strings.TrimSpace(f.value(txDate)),
	}
	if err := validate.Struct(in); err != nil {
		return domain.TransactionInput{}, err
	}
	return in, nil
}

func (m transactionsModel) submit() (transactionsModel, tea.Cmd) {
	if m.filtering {
		from := strings.TrimSpace(m.ed.form.value(filterFrom))
		to := strings.TrimSpace(m.ed.form.value(filterTo))
		for _, d := range []string{from, to} {
			if _, err := time.Parse("2006-01-02", d); d != "" && err != nil {
				m.ed.err = "Dates must look like 2006-01-02"
				return m, nil
			}
		}
		m.from, m.to = from, to
		m.filtering = false
		m.cursor, m.offset = 0, 0
		m.ed.close()
		return m, nil
	}

	in, err := m.input()
	if err != nil {
		m.ed.err = inputError(err)
		return m, nil
	}
	m.ed.err = ""
	m.ed.busy = true
	c, id := m.client, m.ed.editID
	if id == 0 {
		return m, saveCmd(m.gen, viewTransactions, "Transaction added.", func(ctx context.Context) error {
			_, err := c.CreateTransaction(ctx, in)
			return err
		})
	}
	return m, saveCmd(m.gen, viewTransactions, "Transaction updated.", func(ctx context.Context) error {
		_, err := c.UpdateTransaction(ctx, id, in)
		return err
	})
}

func (m transactionsModel) Update(msg tea.Msg) (transactionsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case transactionsLoadedMsg:
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.transactions = msg.transactions
		m.accounts = msg.accounts
		m.categories = msg.categories
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
			m.offset = 0
		}
	case savedMsg:
		if m.ed.saved(msg) {
			return m, m.Init()
		}
	case tea.KeyMsg:
		switch m.ed.mode {
		case modeForm:
			if m.ed.formKey(msg) {
				return m.submit()
			}
			if !m.ed.active() {
				m.filtering = false
			}
			return m, nil
		case modeConfirm:
			if m.ed.confirmKey(msg) {
				m.ed.busy = true
				c, id := m.client, m.ed.target
				return m, saveCmd(m.gen, viewTransactions, "Transaction deleted.", func(ctx context.Context) error {
					return c.DeleteTransaction(ctx, id)
				})
			}
			return m, nil
		}

		switch key := msg.String(); key {
		case "a":
			m.ed.openForm("Add transaction", 0, m.transactionFields(domain.Transaction{})...)
		case "e":
			if t, ok := m.selected(); ok {
				m.ed.openForm("Edit transaction", t.ID, m.transactionFields(t)...)
			}
		case "d":
			if t, ok := m.selected(); ok {
				m.ed.openConfirm(fmt.Sprintf("Delete %s of %s on %s?",
					truncStr(describeTransaction(t), 30), formatCurrency(t.Amount.Float()), formatDate(t.TransactionDate)), t.ID)
			}
		case "f":
			m.filtering = true
			m.ed.openForm("Filter by date", 0,
				field{label: "Start date", value: m.from, placeholder: "2006-01-02"},
				field{label: "End date", value: m.to, placeholder: "2006-01-02"})
		case "x":
			m.from, m.to = "", ""
			m.cursor, m.offset = 0, 0
		default:
			m.cursor = moveCursor(m.cursor, len(m.visible()), key)
			m.scrollToCursor()
		}
	}
	return m, nil
}

func describeTransaction(t domain.Transaction) string {
	if t.Description != "" {
		return t.Description
	}
	return t.CategoryName
}

// dateLabel shows "Today" for transactions dated today.
func dateLabel(date string, now time.Time) string {
	if strings.HasPrefix(date, formatDateForInput(now)) {
		return "Today"
	}
	return formatDate(date)
}

func (m transactionsModel) helpKeys() string {
	if m.ed.active() {
		return m.ed.helpKeys()
	}
	return helpBar("1-6", "tabs", "j/k", "scroll", "a", "add", "e", "edit", "d", "delete", "f", "filter", "x", "clear", "q", "quit")
}

func (m transactionsModel) View() string {
	if m.ed.mode == modeForm {
		return m.ed.View()
	}
	if m.err != "" {
		return "\n  " + errorStyle.Render("Could not load transactions: "+m.err) + "\n"
	}
	rows := m.visible()

	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render(fmt.Sprintf("Transactions (%d)", len(rows))))
	if m.from != "" || m.to != "" {
		from, to := m.from, m.to
		if from == "" {
			from = "…"
		}
		if to == "" {
			to = "…"
		}
		b.WriteString("  " + metaStyle.Render("from "+from+" to "+to))
	}
	b.WriteString("\n")

	var income, expenses float64
	for _, t := range rows {
		if t.Type == domain.Credit {
			income += t.Amount.Float()
		} else {
			expenses += t.Amount.Float()
		}
	}
	net := income - expenses
	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s\n\n",
		dimStyle.Render("Income"), incomeStyle.Render(formatCurrency(income)),
		dimStyle.Render("Expenses"), expenseStyle.Render(formatCurrency(expenses)),
		dimStyle.Render("Net"), amountStyle(net).Render(formatCurrency(net)))

	if len(rows) == 0 {
		if len(m.transactions) == 0 {
			b.WriteString("  " + dimStyle.Render("No transactions yet. Press a to add one.") + "\n")
		} else {
			b.WriteString("  " + dimStyle.Render("No transactions in this date range.") + "\n")
		}
		b.WriteString(m.ed.View())
		return b.String()
	}
	end := min(m.offset+m.visibleRows(), len(rows))
	now := time.Now()
	for i := m.offset; i < end; i++ {
		t := rows[i]
		line := fmt.Sprintf("%s %s %s %s",
			padRight(dateLabel(t.TransactionDate, now), 13),
			padRight(describeTransaction(t), 28),
			padRight(t.CategoryName, 16),
			padRight(t.AccountName, 16))
		amount := amountStyle(t.Signed()).Render(fmt.Sprintf("%12s", formatCurrency(t.Signed())))
		if i == m.cursor {
			b.WriteString(accentStyle.Render("> ") + selectedStyle.Render(line) + amount + "\n")
		} else {
			b.WriteString("  " + normalStyle.Render(line) + amount + "\n")
		}
	}
	b.WriteString(m.ed.View())
	return b.String()
}

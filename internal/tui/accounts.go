package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

type accountsLoadedMsg struct {
	scope
	accounts []domain.Account
	err      error
}

type accountBalanceMsg struct {
	scope
	balance *domain.AccountBalance
	err     error
}

// Account form fields.
const (
	acctName = iota
	acctType
	acctBalance
	acctCurrency
	acctDescription
)

const defaultCurrency = "USD"

type accountsModel struct {
	client   *client.Client
	gen      int
	accounts []domain.Account
	cursor   int
	err      string
	ed       editor
}

func newAccountsModel(c *client.Client, gen int) accountsModel {
	return accountsModel{client: c, gen: gen}
}

func (m accountsModel) Init() tea.Cmd {
	c, gen := m.client, m.gen
	return func() tea.Msg {
		accounts, err := c.ListAccounts(context.Background())
		return accountsLoadedMsg{scope: scope{gen}, accounts: accounts, err: err}
	}
}

func (m accountsModel) selected() (domain.Account, bool) {
	if m.cursor < 0 || m.cursor >= len(m.accounts) {
		return domain.Account{}, false
	}
	return m.accounts[m.cursor], true
}

func accountFields(a domain.Account) []field {
	typ := domain.AccountTypeName(a.Type)
	if a.Type == "" {
		typ = domain.AccountTypeName(domain.AccountChecking)
	}
	currency := a.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	balance := ""
	if a.ID != 0 {
		balance = fmt.Sprintf("%.2f", a.Balance.Float())
	}
	return []field{
		{label: "Name", value: a.Name, placeholder: "Everyday checking"},
		{label: "Type", value: typ, placeholder: "Checking, Savings, Credit Card or Investment"},
		{label: "Balance", value: balance, placeholder: "0.00"},
		{label: "Currency", value: currency, placeholder: defaultCurrency},
		{label: "Description", value: a.Description, placeholder: "optional"},
	}
}

// input reads and validates the open form.
func (m accountsModel) input() (domain.AccountInput, error) {
	f := m.ed.form
	typ, ok := domain.ParseAccountType(f.value(acctType))
	if !ok {
		return domain.AccountInput{}, errors.New("Type must be Checking, Savings, Credit Card or Investment")
	}
	var balance float64
	if strings.TrimSpace(f.value(acctBalance)) != "" {
		var err error
		if balance, err = parseAmount(f.value(acctBalance)); err != nil {
			return domain.AccountInput{}, err
		}
	}
	in := domain.AccountInput{
		Name:        strings.TrimSpace(f.value(acctName)),
		Type:        typ,
		Balance:     balance,
		Currency:    strings.ToUpper(strings.TrimSpace(f.value(acctCurrency))),
		Description: strings.TrimSpace(f.value(acctDescription)),
	}
	if err := validate.Struct(in); err != nil {
		return domain.AccountInput{}, err
	}
	return in, nil
}

func (m accountsModel) submit() (accountsModel, tea.Cmd) {
	in, err := m.input()
	if err != nil {
		m.ed.err = inputError(err)
		return m, nil
	}
	m.ed.err = ""
	m.ed.busy = true
	c, id := m.client, m.ed.editID
	if id == 0 {
		return m, saveCmd(m.gen, viewAccounts, "Account added.", func(ctx context.Context) error {
			_, err := c.CreateAccount(ctx, in)
			return err
		})
	}
	return m, saveCmd(m.gen, viewAccounts, "Account updated.", func(ctx context.Context) error {
		_, err := c.UpdateAccount(ctx, id, in)
		return err
	})
}

func (m accountsModel) Update(msg tea.Msg) (accountsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.accounts = msg.accounts
		m.cursor = moveCursor(m.cursor, len(m.accounts), "")

	case accountBalanceMsg:
		if msg.err != nil {
			m.ed.err = errText(msg.err)
			return m, nil
		}
		for i := range m.accounts {
			if m.accounts[i].ID == msg.balance.AccountID {
				m.accounts[i].Balance = msg.balance.Balance
				m.ed.status = m.accounts[i].Name + " balance is " + formatCurrency(msg.balance.Balance.Float())
			}
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
			return m, nil
		case modeConfirm:
			if m.ed.confirmKey(msg) {
				m.ed.busy = true
				c, id := m.client, m.ed.target
				return m, saveCmd(m.gen, viewAccounts, "Account deleted.", func(ctx context.Context) error {
					return c.DeleteAccount(ctx, id)
				})
			}
			return m, nil
		}

		switch key := msg.String(); key {
		case "a":
			m.ed.openForm("Add account", 0, accountFields(domain.Account{})...)
		case "e":
			if a, ok := m.selected(); ok {
				m.ed.openForm("Edit account", a.ID, accountFields(a)...)
			}
		case "d":
			if a, ok := m.selected(); ok {
				m.ed.openConfirm(fmt.Sprintf("Delete account %q? This cannot be undone.", a.Name), a.ID)
			}
		case "b":
			if a, ok := m.selected(); ok {
				c, gen, id := m.client, m.gen, a.ID
				return m, func() tea.Msg {
					b, err := c.GetAccountBalance(context.Background(), id)
					return accountBalanceMsg{scope: scope{gen}, balance: b, err: err}
				}
			}
		default:
			m.cursor = moveCursor(m.cursor, len(m.accounts), key)
		}
	}
	return m, nil
}

func (m accountsModel) helpKeys() string {
	if m.ed.active() {
		return m.ed.helpKeys()
	}
	return helpBar("1-6", "tabs", "a", "add", "e", "edit", "d", "delete", "b", "balance", "q", "quit")
}

func (m accountsModel) View() string {
	if m.ed.mode == modeForm {
		return m.ed.View()
	}
	if m.err != "" {
		return "\n  " + errorStyle.Render("Could not load accounts: "+m.err) + "\n"
	}

	var b strings.Builder
	total := domain.TotalBalance(m.accounts)
	noun := "accounts"
	if len(m.accounts) == 1 {
		noun = "account"
	}
	fmt.Fprintf(&b, "\n  %s  %s  %s\n\n",
		sectionHeaderStyle.Render("Total balance"),
		amountStyle(total).Bold(true).Render(formatCurrency(total)),
		metaStyle.Render(fmt.Sprintf("across %d %s", len(m.accounts), noun)))

	if len(m.accounts) == 0 {
		b.WriteString("  " + dimStyle.Render("No accounts yet. Press a to add your first account.") + "\n")
	}
	for i, a := range m.accounts {
		line := normalStyle.Render(padRight(a.Name, 24)) + " " +
			metaStyle.Render(padRight(domain.AccountTypeName(a.Type), 12)) + " " +
			amountStyle(a.Balance.Float()).Render(fmt.Sprintf("%14s", formatCurrency(a.Balance.Float())))
		if a.Description != "" {
			line += "  " + dimStyle.Render(truncStr(a.Description, 30))
		}
		if i == m.cursor {
			b.WriteString(accentStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString(m.ed.View())
	return b.String()
}

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

type budgetsLoadedMsg struct {
	scope
	budgets    []domain.Budget
	categories []domain.Category
	err        error
}

// Budget form fields.
const (
	budgetCategory = iota
	budgetAmount
	budgetMonth
	budgetYear
)

type budgetsModel struct {
	client      *client.Client
	gen         int
	month, year int // shown period; zero means the current month
	budgets     []domain.Budget
	categories  []domain.Category
	cursor      int
	err         string
	ed          editor
}

func newBudgetsModel(c *client.Client, gen int) budgetsModel {
	return budgetsModel{client: c, gen: gen}
}

func (m budgetsModel) Init() tea.Cmd {
	c, gen, month, year := m.client, m.gen, m.month, m.year
	return func() tea.Msg {
		ctx := context.Background()
		var budgets []domain.Budget
		var err error
		if month == 0 {
			budgets, err = c.CurrentBudgets(ctx)
		} else {
			budgets, err = c.BudgetsByMonth(ctx, month, year)
		}
		if err != nil {
			return budgetsLoadedMsg{scope: scope{gen}, err: err}
		}
		cats, err := c.ListCategories(ctx, domain.CategoryExpense)
		if err != nil {
			return budgetsLoadedMsg{scope: scope{gen}, err: err}
		}
		return budgetsLoadedMsg{scope: scope{gen}, budgets: budgets, categories: cats}
	}
}

// period returns the month and year shown.
func (m budgetsModel) period() (int, int) {
	if m.month == 0 {
		now := time.Now()
		return int(now.Month()), now.Year()
	}
	return m.month, m.year
}

// step moves the shown period by delta months. Landing on the current month
// goes back to the current-budgets endpoint.
func (m budgetsModel) step(delta int) budgetsModel {
	month, year := m.period()
	t := time.Date(year, time.Month(month)+time.Month(delta), 1, 0, 0, 0, 0, time.Local)
	now := time.Now()
	if t.Year() == now.Year() && t.Month() == now.Month() {
		m.month, m.year = 0, 0
	} else {
		m.month, m.year = int(t.Month()), t.Year()
	}
	m.cursor = 0
	return m
}

func (m budgetsModel) selected() (domain.Budget, bool) {
	if m.cursor < 0 || m.cursor >= len(m.budgets) {
		return domain.Budget{}, false
	}
	return m.budgets[m.cursor], true
}

func (m budgetsModel) newBudgetFields() []field {
	month, year := m.period()
	category := ""
	if len(m.categories) > 0 {
		category = m.categories[0].Name
	}
	return []field{
		{label: "Category", value: category, placeholder: "expense category name or id"},
		{label: "Amount", placeholder: "0.00"},
		{label: "Month", value: strconv.Itoa(month), placeholder: "1-12"},
		{label: "Year", value: strconv.Itoa(year), placeholder: "2006"},
	}
}

// input reads and validates the open form. Editing changes only the amount.
func (m budgetsModel) input() (domain.BudgetInput, error) {
	f := m.ed.form
	if m.ed.editID != 0 {
		b, _ := m.byID(m.ed.editID)
		amount, err := parseAmount(f.value(0))
		if err != nil {
			return domain.BudgetInput{}, err
		}
		in := domain.BudgetInput{CategoryID: b.CategoryID, Amount: amount, Month: b.Month, Year: b.Year}
		if err := validate.Struct(in); err != nil {
			return domain.BudgetInput{}, err
		}
		return in, nil
	}

	categoryID, ok := lookupID(f.value(budgetCategory), m.categories,
		func(c domain.Category) int64 { return c.ID },
		func(c domain.Category) string { return c.Name })
	if !ok {
		return domain.BudgetInput{}, fmt.Errorf("No expense category named %q", strings.TrimSpace(f.value(budgetCategory)))
	}
	amount, err := parseAmount(f.value(budgetAmount))
	if err != nil {
		return domain.BudgetInput{}, err
	}
	month, err := strconv.Atoi(strings.TrimSpace(f.value(budgetMonth)))
	if err != nil {
		return domain.BudgetInput{}, errors.New("Month must be a number from 1 to 12")
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.value(budgetYear)))
	if err != nil {
		return domain.BudgetInput{}, errors.New("Year must be a number")
	}
	in := domain.BudgetInput{CategoryID: categoryID, Amount: amount, Month: month, Year: year}
	if err := validate.Struct(in); err != nil {
		return domain.BudgetInput{}, err
	}
	return in, nil
}

func (m budgetsModel) byID(id int64) (domain.Budget, bool) {
	for _, b := range m.budgets {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Budget{}, false
}

func (m budgetsModel) submit() (budgetsModel, tea.Cmd) {
	in, err := m.input()
	if err != nil {
		m.ed.err = inputError(err)
		return m, nil
	}
	m.ed.err = ""
	m.ed.busy = true
	c, id := m.client, m.ed.editID
	if id == 0 {
		return m, saveCmd(m.gen, viewBudgets, "Budget added.", func(ctx context.Context) error {
			_, err := c.CreateBudget(ctx, in)
			return err
		})
	}
	return m, saveCmd(m.gen, viewBudgets, "Budget updated.", func(ctx context.Context) error {
		_, err := c.UpdateBudget(ctx, id, in)
		return err
	})
}

func (m budgetsModel) Update(msg tea.Msg) (budgetsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.budgets = msg.budgets
		m.categories = msg.categories
		m.cursor = moveCursor(m.cursor, len(m.budgets), "")

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
				return m, saveCmd(m.gen, viewBudgets, "Budget deleted.", func(ctx context.Context) error {
					return c.DeleteBudget(ctx, id)
				})
			}
			return m, nil
		}

		switch key := msg.String(); key {
		case "a":
			m.ed.openForm("Add budget", 0, m.newBudgetFields()...)
		case "e":
			if b, ok := m.selected(); ok {
				m.ed.openForm("Edit "+b.CategoryName+" budget", b.ID,
					field{label: "Amount", value: fmt.Sprintf("%.2f", b.Amount.Float()), placeholder: "0.00"})
			}
		case "d":
			if b, ok := m.selected(); ok {
				m.ed.openConfirm(fmt.Sprintf("Delete the %s budget?", b.CategoryName), b.ID)
			}
		case "[":
			m = m.step(-1)
			return m, m.Init()
		case "]":
			m = m.step(1)
			return m, m.Init()
		case "c":
			if m.month != 0 {
				m.month, m.year, m.cursor = 0, 0, 0
				return m, m.Init()
			}
		default:
			m.cursor = moveCursor(m.cursor, len(m.budgets), key)
		}
	}
	return m, nil
}

func (m budgetsModel) helpKeys() string {
	if m.ed.active() {
		return m.ed.helpKeys()
	}
	return helpBar("1-6", "tabs", "[/]", "month", "a", "add", "e", "edit", "d", "delete", "q", "quit")
}

func (m budgetsModel) View() string {
	if m.ed.mode == modeForm {
		return m.ed.View()
	}
	month, year := m.period()
	label := time.Month(month).String() + " " + strconv.Itoa(year)
	if m.month == 0 {
		label += " (this month)"
	}
	if m.err != "" {
		return "\n  " + sectionHeaderStyle.Render(label) + "\n  " + errorStyle.Render("Could not load budgets: "+m.err) + "\n"
	}

	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render(label) + "\n")
	totals := domain.SummarizeBudgets(m.budgets)
	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s   %s %s\n\n",
		dimStyle.Render("Budgeted"), normalStyle.Render(formatCurrency(totals.Budgeted)),
		dimStyle.Render("Spent"), expenseStyle.Render(formatCurrency(totals.Spent)),
		dimStyle.Render("On track"), incomeStyle.Render(fmt.Sprintf("%d", totals.OnTrack)),
		dimStyle.Render("Exceeded"), expenseStyle.Render(fmt.Sprintf("%d", totals.Exceeded)))

	if len(m.budgets) == 0 {
		b.WriteString("  " + dimStyle.Render("No budgets for this month. Press a to add one.") + "\n")
	}
	for i, bg := range m.budgets {
		style := budgetStyle(bg.Status())
		prefix := "  "
		if i == m.cursor {
			prefix = accentStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s %s %s\n",
			prefix,
			normalStyle.Render(padRight(bg.CategoryName, 18)),
			progressBar(bg.PercentageUsed, 24, style),
			style.Render(fmt.Sprintf("%5.1f%%", bg.PercentageUsed)),
			dimStyle.Render(formatCurrency(bg.Spent.Float())+" / "+formatCurrency(bg.Amount.Float())))
	}
	b.WriteString(m.ed.View())
	return b.String()
}

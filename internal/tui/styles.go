package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/financeflow/pkg/domain"
)

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	// Money
	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#facc15"))

	// Notices and errors
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	// Forms
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Width(18)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#34d474")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Advisor
	chatUserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	chatAdvisorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	chatTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2a2e38"))
)

// amountStyle colours a signed amount: green for inflow, red for outflow.
func amountStyle(v float64) lipgloss.Style {
	if v < 0 {
		return expenseStyle
	}
	return incomeStyle
}

// budgetStyle returns the colour for a budget status.
func budgetStyle(status string) lipgloss.Style {
	switch status {
	case domain.BudgetExceeded:
		return expenseStyle
	case domain.BudgetWarning:
		return warningStyle
	default:
		return incomeStyle
	}
}

// progressBar renders pct (0-100, clamped) as a bar of width cells.
func progressBar(pct float64, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return style.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into a help line.
func helpBar(pairs ...string) string {
	var entries []string
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(entries, "  ")
}

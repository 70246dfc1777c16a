package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var financeTips = [...]string{
	"Pay yourself first: move savings out on payday, not at month end.",
	"A budget you review weekly beats a perfect one you never open.",
	"Three months of expenses in savings turns emergencies into inconveniences.",
	"Small recurring charges add up. Check your subscriptions this month.",
	"Round up every purchase and save the difference.",
	"Track what you spend for thirty days before you decide what to cut.",
	"Income minus expenses is the only number that compounds.",
	"The cheapest loan is the credit card balance you pay in full.",
}

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("FinanceFlow")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Personal finance from your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"financeflow", "Open the dashboard (interactive TUI)"},
		{"financeflow login [email]", "Sign in"},
		{"financeflow register", "Create an account"},
		{"financeflow verify <token>", "Verify your email address"},
		{"financeflow resend <email>", "Resend the verification email"},
		{"financeflow whoami", "Show the signed-in user"},
		{"financeflow scan <image> [account]", "Read a receipt, optionally saving it"},
		{"financeflow web", "Open the web app"},
		{"financeflow logout", "Sign out"},
		{"financeflow --version", "Show version"},
		{"financeflow help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-36s", c.cmd)), descStyle.Render(c.desc))
	}
	env := descStyle.Render("Environment: FINANCEFLOW_API_URL, FINANCEFLOW_WEB_URL, FINANCEFLOW_HOME, FINANCEFLOW_TIMEOUT, FINANCEFLOW_DEBUG")
	fmt.Fprintf(w, "\n  %s\n\n", env)
}

func printTip(w io.Writer) {
	tip := financeTips[rand.IntN(len(financeTips))]
	fmt.Fprintf(w, "\n%s\n\n", lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(tip))
}

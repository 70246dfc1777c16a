package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/domain"
)

const registeredNotice = "Registration successful! Please check your email to verify your account."

type registerResultMsg struct {
	err error
}

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
)

type registerModel struct {
	gw   Gateway
	form form
	err  string
	busy bool
}

func newRegisterModel(gw Gateway) registerModel {
	return registerModel{
		gw: gw,
		form: form{fields: []field{
			{label: "Full name", placeholder: "Jane Doe"},
			{label: "Email", placeholder: "you@example.com"},
			{label: "Password", placeholder: "password", secret: true},
			{label: "Confirm password", placeholder: "password", secret: true},
		}},
	}
}

func (m registerModel) submit() tea.Cmd {
	gw := m.gw
	reg := domain.Registration{
		FullName:        strings.TrimSpace(m.form.value(regName)),
		Email:           strings.TrimSpace(m.form.value(regEmail)),
		Password:        m.form.value(regPassword),
		ConfirmPassword: m.form.value(regConfirm),
	}
	return func() tea.Msg {
		return registerResultMsg{err: gw.Register(context.Background(), reg)}
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = errText(msg.err)
			return m, nil
		}
		m.err = ""
		m.form.reset()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.form.next()
		case "shift+tab", "up":
			m.form.prev()
		case "esc":
			return m, func() tea.Msg { return switchViewMsg{to: viewLogin} }
		case "enter":
			if m.form.focus != regConfirm {
				m.form.next()
				return m, nil
			}
			m.err = ""
			m.busy = true
			return m, m.submit()
		default:
			m.form.edit(msg)
		}
	}
	return m, nil
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Create account") + "\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("Creating account...") + "\n")
	case m.err != "":
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/financeflow/pkg/domain"
	"github.com/naveenspark/financeflow/pkg/session"
)

// Gateway is the session surface the UI needs. *session.Gateway implements it.
type Gateway interface {
	Login(ctx context.Context, creds domain.Credentials) (session.Session, error)
	Register(ctx context.Context, reg domain.Registration) error
	Logout() error
	Current() session.Session
	IsAuthenticated() bool
}

type loginResultMsg struct {
	session session.Session
	err     error
}

// switchViewMsg asks the App to show another view.
type switchViewMsg struct {
	to view
}

const (
	loginEmail = iota
	loginPassword
)

type loginModel struct {
	gw     Gateway
	form   form
	err    string
	notice string
	busy   bool
}

func newLoginModel(gw Gateway) loginModel {
	return loginModel{
		gw: gw,
		form: form{fields: []field{
			{label: "Email", placeholder: "you@example.com"},
			{label: "Password", placeholder: "password", secret: true},
		}},
	}
}

func (m loginModel) submit() tea.Cmd {
	gw := m.gw
	creds := domain.Credentials{
		Email:    strings.TrimSpace(m.form.value(loginEmail)),
		Password: m.form.value(loginPassword),
	}
	return func() tea.Msg {
		s, err := gw.Login(context.Background(), creds)
		return loginResultMsg{session: s, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = errText(msg.err)
			m.form.fields[loginPassword].value = ""
			m.form.focus = loginPassword
			return m, nil
		}
		m.err = ""
		m.notice = ""
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
		case "ctrl+r":
			return m, func() tea.Msg { return switchViewMsg{to: viewRegister} }
		case "enter":
			if m.form.focus == loginEmail {
				m.form.next()
				return m, nil
			}
			if strings.TrimSpace(m.form.value(loginEmail)) == "" || m.form.value(loginPassword) == "" {
				m.err = "Email and password are required"
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

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Sign in") + "\n\n")
	if m.notice != "" {
		b.WriteString("  " + noticeStyle.Render(m.notice) + "\n\n")
	}
	b.WriteString(m.form.View())
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("Signing in...") + "\n")
	case m.err != "":
		b.WriteString("  " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

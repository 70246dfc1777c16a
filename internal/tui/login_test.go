package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(m loginModel, s string) loginModel {
	m, _ = m.Update(keyRunes(s))
	return m
}

func TestLoginTabCyclesFocus(t *testing.T) {
	m := newLoginModel(&fakeGateway{})
	if m.form.focus != loginEmail {
		t.Fatalf("expected focus on email, got %d", m.form.focus)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.form.focus != loginPassword {
		t.Errorf("expected focus on password after tab, got %d", m.form.focus)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.form.focus != loginEmail {
		t.Errorf("expected focus to wrap to email, got %d", m.form.focus)
	}
}

func TestLoginPasswordMasked(t *testing.T) {
	m := newLoginModel(&fakeGateway{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "hunter2")
	out := m.View()
	if strings.Contains(out, "hunter2") {
		t.Error("password rendered in clear text")
	}
	if !strings.Contains(out, "•••••••") {
		t.Error("expected masked password")
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	m := newLoginModel(&fakeGateway{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no request with empty fields")
	}
	if m.err == "" {
		t.Error("expected a validation message")
	}
}

func TestLoginEnterOnEmailMovesToPassword(t *testing.T) {
	m := newLoginModel(&fakeGateway{})
	m = typeInto(m, "jane@example.com")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected enter on email to move focus, not submit")
	}
	if m.form.focus != loginPassword {
		t.Errorf("expected focus on password, got %d", m.form.focus)
	}
}

func TestLoginFailureClearsPassword(t *testing.T) {
	gw := &fakeGateway{}
	m := newLoginModel(gw)
	m = typeInto(m, "jane@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeInto(m, "wrong")
	m, _ = m.Update(loginResultMsg{err: errors.New("Invalid email or password")})

	if m.form.value(loginPassword) != "" {
		t.Error("expected password cleared after failure")
	}
	if m.form.value(loginEmail) != "jane@example.com" {
		t.Error("expected email kept after failure")
	}
	if !strings.Contains(m.View(), "Invalid email or password") {
		t.Error("expected error in view")
	}
}

func TestLoginIgnoresKeysWhileBusy(t *testing.T) {
	m := newLoginModel(&fakeGateway{})
	m.busy = true
	m = typeInto(m, "x")
	if m.form.value(loginEmail) != "" {
		t.Error("expected input ignored while signing in")
	}
}

func TestLoginCtrlROpensRegister(t *testing.T) {
	m := newLoginModel(&fakeGateway{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected switch command")
	}
	msg, ok := cmd().(switchViewMsg)
	if !ok || msg.to != viewRegister {
		t.Errorf("expected switch to register, got %#v", msg)
	}
}

func TestRegisterSubmitsOnLastField(t *testing.T) {
	gw := &fakeGateway{}
	m := newRegisterModel(gw)
	for i, v := range []string{"Jane Doe", "jane@example.com", "secret", "secret"} {
		m, _ = m.Update(keyRunes(v))
		if i < regConfirm {
			var cmd tea.Cmd
			m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd != nil {
				t.Fatalf("field %d: enter should advance, not submit", i)
			}
		}
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected register command")
	}
	if !m.busy {
		t.Error("expected busy while registering")
	}
	if _, ok := cmd().(registerResultMsg); !ok {
		t.Fatal("expected registerResultMsg")
	}
	if len(gw.registered) != 1 {
		t.Fatalf("expected one registration, got %d", len(gw.registered))
	}
	got := gw.registered[0]
	if got.FullName != "Jane Doe" || got.Email != "jane@example.com" || got.ConfirmPassword != "secret" {
		t.Errorf("unexpected registration: %+v", got)
	}
}

func TestRegisterShowsError(t *testing.T) {
	m := newRegisterModel(&fakeGateway{})
	m.busy = true
	m, _ = m.Update(registerResultMsg{err: errors.New("Passwords do not match")})
	if m.busy {
		t.Error("expected busy cleared")
	}
	if !strings.Contains(m.View(), "Passwords do not match") {
		t.Error("expected error in view")
	}
}

func TestRegisterEscReturnsToLogin(t *testing.T) {
	m := newRegisterModel(&fakeGateway{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected switch command")
	}
	if msg, ok := cmd().(switchViewMsg); !ok || msg.to != viewLogin {
		t.Errorf("expected switch to login, got %#v", msg)
	}
}

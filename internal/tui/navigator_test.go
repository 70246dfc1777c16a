package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func TestNavigatorSendsExpiry(t *testing.T) {
	s := &recordingSender{}
	n := NewNavigator()
	n.Attach(s)
	n.ToLogin()

	if s.count() != 1 {
		t.Fatalf("expected 1 message, got %d", s.count())
	}
	if _, ok := s.msgs[0].(sessionExpiredMsg); !ok {
		t.Errorf("expected sessionExpiredMsg, got %T", s.msgs[0])
	}
}

func TestNavigatorDeliversPendingOnAttach(t *testing.T) {
	s := &recordingSender{}
	n := NewNavigator()
	n.ToLogin()
	n.Attach(s)

	deadline := time.Now().Add(time.Second)
	for s.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.count() != 1 {
		t.Errorf("expected pending expiry delivered once, got %d", s.count())
	}
}

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// sessionExpiredMsg tells the App the server rejected the session.
type sessionExpiredMsg struct{}

// sender is the part of *tea.Program the Navigator uses.
type sender interface {
	Send(msg tea.Msg)
}

// Navigator turns the session gateway's navigate callback into a program
// message. It is created before the program, so ToLogin calls made before
// Attach are remembered and delivered on attach.
type Navigator struct {
	mu      sync.Mutex
	program sender
	pending bool
}

// NewNavigator returns a detached Navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Attach binds the navigator to a running program.
func (n *Navigator) Attach(p sender) {
	n.mu.Lock()
	n.program = p
	pending := n.pending
	n.pending = false
	n.mu.Unlock()

	if pending && p != nil {
		go p.Send(sessionExpiredMsg{})
	}
}

// ToLogin returns the UI to the login view. It must not be called from the
// program's Update loop; the gateway calls it from request goroutines.
func (n *Navigator) ToLogin() {
	n.mu.Lock()
	p := n.program
	if p == nil {
		n.pending = true
	}
	n.mu.Unlock()

	if p != nil {
		p.Send(sessionExpiredMsg{})
	}
}

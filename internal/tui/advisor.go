package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/financeflow/pkg/client"
	"github.com/naveenspark/financeflow/pkg/domain"
)

type chatReplyMsg struct {
	scope
	reply string
	err   error
}

type advisorCopyMsg struct{ err error }

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

type advisorModel struct {
	client       *client.Client
	gen          int
	messages     []domain.ChatMessage
	input        string
	inputFocused bool
	suggestion   int
	waiting      bool
	statusMsg    string
	width        int
	height       int
}

func newAdvisorModel(c *client.Client, gen int) advisorModel {
	return advisorModel{client: c, gen: gen, inputFocused: true}
}

func (m advisorModel) Init() tea.Cmd { return nil }

func (m advisorModel) send(text string) tea.Cmd {
	c, gen := m.client, m.gen
	return func() tea.Msg {
		reply, err := c.Chat(context.Background(), text)
		return chatReplyMsg{scope: scope{gen}, reply: reply, err: err}
	}
}

// lastReply returns the most recent advisor answer.
func (m advisorModel) lastReply() (string, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == domain.RoleAssistant {
			return m.messages[i].Content, true
		}
	}
	return "", false
}

func (m advisorModel) Update(msg tea.Msg) (advisorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case chatReplyMsg:
		m.waiting = false
		if msg.err != nil {
			m.statusMsg = "advisor unavailable: " + errText(msg.err)
			return m, nil
		}
		m.statusMsg = ""
		m.messages = append(m.messages, domain.ChatMessage{Role: domain.RoleAssistant, Content: msg.reply})

	case advisorCopyMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "copied to clipboard"
		}

	case tea.KeyMsg:
		if m.inputFocused {
			switch msg.String() {
			case "esc":
				m.inputFocused = false
			case "enter":
				text := strings.TrimSpace(m.input)
				if text == "" || m.waiting {
					return m, nil
				}
				m.messages = append(m.messages, domain.ChatMessage{Role: domain.RoleUser, Content: text})
				m.input = ""
				m.waiting = true
				m.statusMsg = ""
				return m, m.send(text)
			default:
				m.input = editKey(m.input, msg)
			}
			return m, nil
		}
		switch msg.String() {
		case "enter", "i":
			m.inputFocused = true
		case "s":
			m.input = domain.SuggestedQuestions[m.suggestion%len(domain.SuggestedQuestions)]
			m.suggestion++
			m.inputFocused = true
		case "y":
			reply, ok := m.lastReply()
			if !ok {
				m.statusMsg = "nothing to copy yet"
				return m, nil
			}
			return m, func() tea.Msg {
				return advisorCopyMsg{err: clipboardWrite(reply)}
			}
		}
	}
	return m, nil
}

func (m advisorModel) helpKeys() string {
	if m.inputFocused {
		return helpBar("enter", "send", "esc", "nav")
	}
	return helpBar("1-6", "tabs", "i", "type", "s", "suggest", "y", "copy reply", "q", "quit")
}

func (m advisorModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("AI financial advisor") + "\n\n")

	if len(m.messages) == 0 {
		b.WriteString("  " + dimStyle.Render("Ask about your spending, budgets or savings. Try:") + "\n")
		for _, q := range domain.SuggestedQuestions {
			b.WriteString("    " + metaStyle.Render("· "+q) + "\n")
		}
		b.WriteString("\n")
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-6, 20))
	for _, msg := range m.messages {
		name := chatUserStyle.Render("You")
		if msg.Role == domain.RoleAssistant {
			name = chatAdvisorStyle.Render("Advisor")
		}
		b.WriteString("  " + name + "\n")
		for _, line := range strings.Split(wrap.Render(msg.Content), "\n") {
			b.WriteString("    " + chatTextStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}
	if m.waiting {
		b.WriteString("  " + dimStyle.Render("Advisor is thinking...") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("  " + noticeStyle.Render(m.statusMsg) + "\n")
	}

	prompt := inputPromptStyle.Render("> ")
	switch {
	case m.input == "" && !m.inputFocused:
		b.WriteString(" " + prompt + inputPlaceholderStyle.Render("press i to ask the advisor..."))
	case m.inputFocused:
		b.WriteString(" " + prompt + normalStyle.Render(m.input) + accentStyle.Render("█"))
	default:
		b.WriteString(" " + prompt + dimStyle.Render(m.input))
	}
	return tailLines(b.String(), m.height)
}

package tui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form and chat inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// editKey applies a key press to text. Rune input, including pasted text,
// is inserted up to maxInputLen runes; other keys go through editRune.
func editKey(text string, msg tea.KeyMsg) string {
	if msg.Type != tea.KeyRunes {
		return editRune(text, msg.String())
	}
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	runes := msg.Runes
	if len(runes) > room {
		runes = runes[:room]
	}
	return text + string(runes)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// field is one labelled form input.
type field struct {
	label       string
	value       string
	placeholder string
	secret      bool
}

// renderField draws a form row. Secret values are masked.
func renderField(f field, focused bool) string {
	value := f.value
	if f.secret {
		value = strings.Repeat("•", utf8.RuneCountInString(value))
	}
	prompt := "  "
	if focused {
		prompt = inputPromptStyle.Render("> ")
	}
	var shown string
	switch {
	case value == "" && !focused:
		shown = inputPlaceholderStyle.Render(f.placeholder)
	case focused:
		shown = normalStyle.Render(value) + accentStyle.Render("█")
	default:
		shown = dimStyle.Render(value)
	}
	return prompt + labelStyle.Render(f.label) + shown
}

// form is a focus-cycling set of fields shared by the login and register views.
type form struct {
	fields []field
	focus  int
}

func (f *form) next() { f.focus = (f.focus + 1) % len(f.fields) }

func (f *form) prev() { f.focus = (f.focus + len(f.fields) - 1) % len(f.fields) }

func (f *form) edit(msg tea.KeyMsg) {
	f.fields[f.focus].value = editKey(f.fields[f.focus].value, msg)
}

func (f *form) value(i int) string { return f.fields[i].value }

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focus = 0
}

func (f form) View() string {
	var b strings.Builder
	for i, fl := range f.fields {
		b.WriteString(renderField(fl, i == f.focus))
		b.WriteString("\n")
	}
	return b.String()
}

// tailLines keeps the last maxLines lines of s. Returns s if it fits or
// maxLines is <= 0.
func tailLines(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}

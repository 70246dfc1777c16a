package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// scope tags a load or save result with the session generation that issued
// it. The App drops results from an earlier session.
type scope struct{ gen int }

func (s scope) generation() int { return s.gen }

type scoped interface{ generation() int }

// savedMsg reports a create, update or delete made from one of the list
// views. On success the view reloads and shows note.
type savedMsg struct {
	scope
	target view
	note   string
	err    error
}

type editorMode int

const (
	modeList editorMode = iota
	modeForm
	modeConfirm
)

// editor is the add/edit/delete state shared by the accounts, transactions
// and budgets views.
type editor struct {
	mode   editorMode
	title  string
	form   form
	editID int64 // 0 while adding
	prompt string
	target int64 // pending delete
	busy   bool
	err    string
	status string
}

func (e *editor) openForm(title string, id int64, fields ...field) {
	e.mode = modeForm
	e.title = title
	e.form = form{fields: fields}
	e.editID = id
	e.err = ""
	e.status = ""
}

func (e *editor) openConfirm(prompt string, id int64) {
	e.mode = modeConfirm
	e.prompt = prompt
	e.target = id
	e.status = ""
}

func (e *editor) close() {
	e.mode = modeList
	e.err = ""
	e.busy = false
}

func (e editor) active() bool { return e.mode != modeList }

// formKey applies a key to the open form and reports whether it asks to
// submit. esc closes the form.
func (e *editor) formKey(msg tea.KeyMsg) (submit bool) {
	if e.busy {
		return false
	}
	switch msg.String() {
	case "tab", "down":
		e.form.next()
	case "shift+tab", "up":
		e.form.prev()
	case "esc":
		e.close()
	case "enter":
		if e.form.focus != len(e.form.fields)-1 {
			e.form.next()
			return false
		}
		return true
	default:
		e.form.edit(msg)
	}
	return false
}

// confirmKey answers the open delete prompt and reports whether it was
// accepted.
func (e *editor) confirmKey(msg tea.KeyMsg) (yes bool) {
	if e.busy {
		return false
	}
	switch msg.String() {
	case "y", "Y":
		return true
	case "n", "N", "esc":
		e.close()
	}
	return false
}

// saved records the outcome of a save. It reports whether the view should
// reload.
func (e *editor) saved(msg savedMsg) bool {
	e.busy = false
	if msg.err != nil {
		if e.mode == modeConfirm {
			e.mode = modeList
			e.status = ""
		}
		e.err = errText(msg.err)
		return false
	}
	e.mode = modeList
	e.err = ""
	e.status = msg.note
	return true
}

// helpKeys returns the help bar of the open form or prompt.
func (e editor) helpKeys() string {
	switch e.mode {
	case modeForm:
		return helpBar("tab", "next", "enter", "save", "esc", "cancel")
	case modeConfirm:
		return helpBar("y", "delete", "n", "keep")
	}
	return ""
}

func (e editor) View() string {
	var b strings.Builder
	switch e.mode {
	case modeForm:
		b.WriteString("\n  " + sectionHeaderStyle.Render(e.title) + "\n\n")
		b.WriteString(e.form.View())
		b.WriteString("\n")
	case modeConfirm:
		b.WriteString("\n  " + noticeStyle.Render(e.prompt) + "\n")
	}
	switch {
	case e.busy:
		b.WriteString("  " + dimStyle.Render("Saving...") + "\n")
	case e.err != "":
		b.WriteString("  " + errorStyle.Render(e.err) + "\n")
	case e.status != "" && e.mode == modeList:
		b.WriteString("  " + incomeStyle.Render(e.status) + "\n")
	}
	return b.String()
}

// parseAmount reads a money amount typed as 12.50, $1,200 or similar.
func parseAmount(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return 0, errors.New("Amount is required")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an amount", s)
	}
	return v, nil
}

// lookupID resolves s as a numeric id or a case-insensitive name among items.
func lookupID[T any](s string, items []T, id func(T) int64, name func(T) string) (int64, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		for _, it := range items {
			if id(it) == n {
				return n, true
			}
		}
		return 0, false
	}
	for _, it := range items {
		if strings.EqualFold(name(it), s) {
			return id(it), true
		}
	}
	return 0, false
}

var inputLabels = map[string]string{
	"AccountID":       "Account",
	"CategoryID":      "Category",
	"TransactionDate": "Date",
}

// inputError flattens a validation failure into one display line.
func inputError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := inputLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required", "gt":
			if fe.Kind().String() == "float64" {
				msgs = append(msgs, label+" must be greater than 0")
			} else {
				msgs = append(msgs, label+" is required")
			}
		case "datetime":
			msgs = append(msgs, label+" must look like 2006-01-02")
		case "min", "max":
			msgs = append(msgs, label+" is out of range")
		default:
			msgs = append(msgs, label+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}

// saveCmd runs do and reports the outcome to target as a savedMsg.
func saveCmd(gen int, target view, note string, do func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{scope: scope{gen}, target: target, note: note, err: do(context.Background())}
	}
}

// moveCursor applies a list navigation key to cursor over n rows.
func moveCursor(cursor, n int, key string) int {
	switch key {
	case "j", "down":
		if cursor < n-1 {
			cursor++
		}
	case "k", "up":
		if cursor > 0 {
			cursor--
		}
	case "g":
		cursor = 0
	case "G":
		cursor = n - 1
	}
	return max(min(cursor, n-1), 0)
}

package tui

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/naveenspark/financeflow/pkg/client"
)

// formatCurrency renders v as US dollars with thousands separators,
// e.g. $1,234.56 and -$12.00.
func formatCurrency(v float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(v))
	neg := v < 0 && s != "0.00"

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatDate renders an API date (YYYY-MM-DD or RFC 3339) as "Jan 2, 2006".
// Unparseable input is returned unchanged.
func formatDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// formatDateForInput renders t the way the API expects dates.
func formatDateForInput(t time.Time) string {
	return t.Format("2006-01-02")
}

// formatTime renders a relative timestamp.
func formatTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces to width runes, truncating if longer.
func padRight(s string, width int) string {
	s = truncStr(s, width)
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

// errText is the user-facing text of a load or action error.
func errText(err error) string {
	if err == nil {
		return ""
	}
	if he, ok := client.AsHTTPError(err); ok && he.Display() != "" {
		return he.Display()
	}
	return err.Error()
}

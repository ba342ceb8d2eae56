package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatNumber prints a user-entered quantity the way it was typed: no
// trailing zeros, no exponent for everyday values ("10", "5.5", "0.25").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed1 prints a derived metric with one decimal ("3.0").
func FormatFixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// RelativeDateFrom returns how long ago t was, relative to now: "Today",
// "Yesterday", "3d ago", "2w ago" or "4mo ago". Future dates read "Today".
func RelativeDateFrom(t time.Time, now time.Time) string {
	y1, m1, d1 := now.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location())
	y2, m2, d2 := t.In(now.Location()).Date()
	day := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())
	days := int(math.Round(start.Sub(day).Hours() / 24))

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 14:
		return fmt.Sprintf("%dd ago", days)
	case days < 60:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}

// RelativeDate is RelativeDateFrom against the current time.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

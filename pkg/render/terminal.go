package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/octocheck/pkg/pattern"
)

const (
	maxNameWidth     = 50
	maxLocationWidth = 12
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		if s := t.renderOne(p); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.Findings:
		return t.renderFindings(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		icon, style := t.theme.forStatus(s.Status)
		sb.WriteString(style.Render(icon) + " " + t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}
	for _, m := range s.Metrics {
		icon, style := t.theme.forKind(m.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon + " " + m.Label + ": " + m.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	nameW, metricW := 0, 0
	for _, item := range l.Items {
		nameW = max(nameW, runewidth.StringWidth(item.Name))
		metricW = max(metricW, runewidth.StringWidth(item.Metric))
	}
	nameW = min(nameW, maxNameWidth)

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		name := runewidth.Truncate(item.Name, nameW, "...")
		sb.WriteString(t.theme.Primary.Render(runewidth.FillRight(name, nameW)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(runewidth.FillLeft(item.Metric, metricW)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderFindings(f *pattern.Findings) string {
	if len(f.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if f.Label != "" {
		sb.WriteString(t.theme.Bold.Render(f.Label))
		sb.WriteString("\n")
	}

	locW := 0
	for _, item := range f.Items {
		locW = max(locW, runewidth.StringWidth(item.Location))
	}
	locW = min(locW, maxLocationWidth)

	// icon, space, location, two spaces, then the message.
	indent := 2 + runewidth.StringWidth(t.theme.Icons.Failure) + 1 + locW + 2
	msgW := max(t.width-indent, 20)

	for _, item := range f.Items {
		icon, style := t.theme.forKind(item.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		sb.WriteString(t.theme.Muted.Render(runewidth.FillRight(item.Location, locW)))
		sb.WriteString("  ")

		lines := strings.Split(item.Message, "\n")
		sb.WriteString(runewidth.Truncate(lines[0], msgW, "…"))
		if item.Source != "" {
			sb.WriteString(t.theme.Muted.Render(" [" + item.Source + "]"))
		}
		pad := strings.Repeat(" ", indent)
		for _, line := range lines[1:] {
			sb.WriteString("\n" + pad + runewidth.Truncate(line, msgW, "…"))
		}
		if item.Title != "" {
			sb.WriteString("\n" + pad + t.theme.Muted.Render(runewidth.Truncate(item.Title, msgW, "…")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/octocheck/pkg/pattern"
)

// maxDetailLines bounds multi-line messages in plain output.
const maxDetailLines = 3

// LLM renders patterns as terse plain text for AI consumption: no ANSI
// codes, a SCOPE line, and one block per file.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats all patterns as plain text.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	var files []*pattern.Findings

	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			sb.WriteString("SCOPE: " + v.Label + "\n")
			if v.Status != "" {
				sb.WriteString("STATUS: " + v.Status + "\n")
			}
		case *pattern.Findings:
			files = append(files, v)
		}
	}

	for _, f := range files {
		sb.WriteString("\n## " + f.Label + "\n")
		for _, item := range f.Items {
			lines := strings.Split(item.Message, "\n")
			fmt.Fprintf(&sb, "  %s %s %s", llmLevel(item.Kind), item.Location, lines[0])
			if item.Title != "" {
				sb.WriteString(" (" + item.Title + ")")
			}
			sb.WriteString("\n")
			shown := min(len(lines)-1, maxDetailLines)
			for _, line := range lines[1 : 1+shown] {
				sb.WriteString("    " + line + "\n")
			}
			if rest := len(lines) - 1 - shown; rest > 0 {
				fmt.Fprintf(&sb, "    ... (%d more lines)\n", rest)
			}
		}
	}
	return sb.String()
}

func llmLevel(kind pattern.Kind) string {
	switch kind {
	case pattern.KindError:
		return "ERR"
	case pattern.KindWarning:
		return "WARN"
	default:
		return "NOTE"
	}
}

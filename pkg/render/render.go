// Package render turns preview patterns into terminal, plain-text or JSON
// output.
package render

import (
	"fmt"

	"github.com/dkoosis/octocheck/pkg/pattern"
)

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// Mode selects a renderer.
type Mode string

const (
	ModeTerminal Mode = "terminal"
	ModeLLM      Mode = "llm"
	ModeJSON     Mode = "json"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTerminal, ModeLLM, ModeJSON:
		return m, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want terminal, llm or json)", s)
	}
}

// New returns the renderer for mode. The theme and width only affect
// terminal output.
func New(mode Mode, theme Theme, width int) Renderer {
	switch mode {
	case ModeLLM:
		return NewLLM()
	case ModeJSON:
		return NewJSON()
	default:
		return NewTerminal(theme, width)
	}
}

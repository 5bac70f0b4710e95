package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/octocheck/pkg/pattern"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Success string
	Failure string
	Warning string
	Notice  string
	Bullet  string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // pale blue
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Success: "✓",
			Failure: "✗",
			Warning: "⚠",
			Notice:  "●",
			Bullet:  "·",
		},
	}
}

// OrcaTheme returns a muted theme.
func OrcaTheme() Theme {
	return Theme{
		Name:    "orca",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Success: "✓",
			Failure: "✗",
			Warning: "!",
			Notice:  "·",
			Bullet:  "·",
		},
	}
}

// MonoTheme returns a monochrome, ASCII-only theme.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Primary: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Notice:  lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Success: "+",
			Failure: "x",
			Warning: "!",
			Notice:  "*",
			Bullet:  "-",
		},
	}
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string { return []string{"default", "orca", "mono"} }

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// forKind returns the icon and style for a pattern kind.
func (th Theme) forKind(kind pattern.Kind) (string, lipgloss.Style) {
	switch kind {
	case pattern.KindSuccess:
		return th.Icons.Success, th.Success
	case pattern.KindError:
		return th.Icons.Failure, th.Error
	case pattern.KindWarning:
		return th.Icons.Warning, th.Warning
	default:
		return th.Icons.Notice, th.Notice
	}
}

func (th Theme) forStatus(status string) (string, lipgloss.Style) {
	switch status {
	case "FAILURE":
		return th.forKind(pattern.KindError)
	case "NEUTRAL":
		return th.forKind(pattern.KindInfo)
	default:
		return th.forKind(pattern.KindSuccess)
	}
}

// Package pager shows rendered preview output in a scrollable full-screen
// view.
package pager

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chrome is the number of rows taken by the title and status bars.
const chrome = 2

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Run pages content until the user quits or ctx is cancelled. in and out
// default to the process terminal when nil.
func Run(ctx context.Context, title, content string, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	if _, err := tea.NewProgram(newModel(title, content), opts...).Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}

type model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	width    int
}

func newModel(title, content string) model {
	return model{title: title, content: content, viewport: viewport.New(0, 0)}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		if !m.ready {
			m.viewport.SetContent(m.content)
			m.ready = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Width(m.width).MaxHeight(1).Render(m.title)
	status := statusStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  g/G top/bottom  q quit", m.viewport.ScrollPercent()*100))
	return title + "\n" + m.viewport.View() + "\n" + status
}

package pager

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sized(t *testing.T, m model, w, h int) model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	got, ok := next.(model)
	require.True(t, ok)
	return got
}

func TestModel_LoadingUntilSized(t *testing.T) {
	m := newModel("octocheck preview", "body")
	assert.Equal(t, "Loading...", m.View())

	m = sized(t, m, 60, 10)
	view := m.View()
	assert.Contains(t, view, "octocheck preview")
	assert.Contains(t, view, "body")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 8, m.viewport.Height)
}

func TestModel_Scrolls(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "line")
	}
	m := sized(t, newModel("t", strings.Join(lines, "\n")), 40, 12)
	assert.True(t, m.viewport.AtTop())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	m = next.(model)
	assert.True(t, m.viewport.AtBottom())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = next.(model)
	assert.True(t, m.viewport.AtTop())
}

func TestModel_Quit(t *testing.T) {
	m := sized(t, newModel("t", "c"), 20, 5)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit, key.String())
	}
}

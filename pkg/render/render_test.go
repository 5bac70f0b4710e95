package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/octocheck/pkg/pattern"
)

func samplePatterns() []pattern.Pattern {
	return []pattern.Pattern{
		&pattern.Summary{
			Label:  "3 annotations in 2 files",
			Status: "FAILURE",
			Metrics: []pattern.SummaryItem{
				{Label: "Failures", Value: "2", Kind: pattern.KindError},
				{Label: "Warnings", Value: "1", Kind: pattern.KindWarning},
			},
		},
		&pattern.Leaderboard{
			Label:      "Files with Most Annotations",
			MetricName: "Annotations",
			Items: []pattern.LeaderboardItem{
				{Name: "src/a.py", Metric: "2 annotations", Value: 2, Rank: 1},
				{Name: "b.rs", Metric: "1 annotations", Value: 1, Rank: 2},
			},
			TotalCount: 2,
			ShowRank:   true,
		},
		&pattern.Findings{
			Label: "src/a.py",
			Items: []pattern.Finding{
				{Kind: pattern.KindError, Level: "Failure", Location: "3:5", Message: "E101 bad indent", Source: "PEP8"},
				{Kind: pattern.KindWarning, Level: "Warning", Location: "10", Message: "first\nsecond", Title: "a.py#10: hint"},
			},
		},
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []string{"terminal", "llm", "json"} {
		got, err := ParseMode(m)
		require.NoError(t, err)
		assert.Equal(t, Mode(m), got)
	}
	_, err := ParseMode("html")
	assert.Error(t, err)

	assert.IsType(t, &LLM{}, New(ModeLLM, MonoTheme(), 0))
	assert.IsType(t, &JSON{}, New(ModeJSON, MonoTheme(), 0))
	assert.IsType(t, &Terminal{}, New(ModeTerminal, MonoTheme(), 0))
}

func TestTerminal_Mono(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render(samplePatterns())

	assert.Contains(t, out, "x 3 annotations in 2 files")
	assert.Contains(t, out, "  x Failures: 2")
	assert.Contains(t, out, "  ! Warnings: 1")
	assert.Contains(t, out, " 1. src/a.py  2 annotations")
	assert.Contains(t, out, " 2. b.rs      1 annotations")
	assert.Contains(t, out, "  x 3:5  E101 bad indent [PEP8]")
	assert.Contains(t, out, "  ! 10   first\n         second\n         a.py#10: hint")
}

func TestTerminal_TruncatesWideMessages(t *testing.T) {
	long := strings.Repeat("界", 100)
	out := NewTerminal(MonoTheme(), 40).Render([]pattern.Pattern{
		&pattern.Findings{Label: "f", Items: []pattern.Finding{{Kind: pattern.KindError, Location: "1", Message: long}}},
	})
	line := strings.Split(out, "\n")[1]
	assert.True(t, strings.HasSuffix(line, "…"), line)
	assert.Less(t, len([]rune(line)), 40)
}

func TestTerminal_SkipsEmpty(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render([]pattern.Pattern{
		&pattern.Leaderboard{Label: "none"},
		&pattern.Findings{Label: "none"},
	})
	assert.Empty(t, out)
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		assert.Equal(t, name, ThemeByName(name).Name)
	}
	assert.Equal(t, "default", ThemeByName("nope").Name)
}

func TestJSON_Render(t *testing.T) {
	out := NewJSON().Render(samplePatterns())

	var doc struct {
		Version  string `json:"version"`
		Patterns []struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1", doc.Version)
	require.Len(t, doc.Patterns, 3)
	assert.Equal(t, "summary", doc.Patterns[0].Type)
	assert.Equal(t, "leaderboard", doc.Patterns[1].Type)
	assert.Equal(t, "findings", doc.Patterns[2].Type)
	assert.Contains(t, string(doc.Patterns[2].Data), "E101 bad indent")
}

package annotation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotation_EqualityIsStructural(t *testing.T) {
	base := New("a.py", 3, 3, LevelWarning, "W291 trailing whitespace", WithColumns(5, 5))

	tests := []struct {
		name  string
		other Annotation
		equal bool
	}{
		{"identical", New("a.py", 3, 3, LevelWarning, "W291 trailing whitespace", WithColumns(5, 5)), true},
		{"different path", New("b.py", 3, 3, LevelWarning, "W291 trailing whitespace", WithColumns(5, 5)), false},
		{"different level", New("a.py", 3, 3, LevelFailure, "W291 trailing whitespace", WithColumns(5, 5)), false},
		{"absent columns", New("a.py", 3, 3, LevelWarning, "W291 trailing whitespace"), false},
		{"extra title", New("a.py", 3, 3, LevelWarning, "W291 trailing whitespace", WithColumns(5, 5), WithTitle("t")), false},
		{"extra details", New("a.py", 3, 3, LevelWarning, "W291 trailing whitespace", WithColumns(5, 5), WithRawDetails("d")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, base == tt.other)
			set := NewSet(base)
			assert.Equal(t, tt.equal, set.Contains(tt.other), "map key identity must follow equality")
		})
	}
}

func TestAnnotation_WithPathCopies(t *testing.T) {
	a := New("/src/a.py", 1, 1, LevelNotice, "m")
	b := a.WithPath("a.py")

	assert.Equal(t, "/src/a.py", a.Path)
	assert.Equal(t, "a.py", b.Path)
	assert.Equal(t, a.Message, b.Message)
}

func TestAnnotation_Location(t *testing.T) {
	assert.Equal(t, "a.rs:3:7", New("a.rs", 3, 3, LevelFailure, "m", WithColumns(7, 9)).Location())
	assert.Equal(t, "a.rs:3", New("a.rs", 3, 5, LevelFailure, "m").Location())
}

func TestSet_DeduplicatesAndUnions(t *testing.T) {
	a := New("a.py", 1, 1, LevelFailure, "E1")
	b := New("a.py", 2, 2, LevelWarning, "W2")

	s := NewSet(a)
	assert.False(t, s.Add(a), "duplicate add must report false")
	assert.True(t, s.Add(b))
	assert.Equal(t, 2, s.Len())

	other := NewSet(b, New("c.py", 9, 9, LevelNotice, "n"))
	s.Union(other)
	assert.Equal(t, 3, s.Len())
}

func TestSet_SliceIsDeterministic(t *testing.T) {
	anns := []Annotation{
		New("b.py", 1, 1, LevelWarning, "w"),
		New("a.py", 10, 10, LevelWarning, "w"),
		New("a.py", 2, 2, LevelWarning, "w"),
		New("a.py", 2, 2, LevelFailure, "e"),
	}
	got := NewSet(anns...).Slice()
	want := []Annotation{
		New("a.py", 2, 2, LevelFailure, "e"),
		New("a.py", 2, 2, LevelWarning, "w"),
		New("a.py", 10, 10, LevelWarning, "w"),
		New("b.py", 1, 1, LevelWarning, "w"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Slice() mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_Equal(t *testing.T) {
	a := New("a.py", 1, 1, LevelFailure, "E1")
	b := New("a.py", 2, 2, LevelWarning, "W2")

	assert.True(t, NewSet(a, b).Equal(NewSet(b, a)))
	assert.False(t, NewSet(a).Equal(NewSet(b)))
	assert.False(t, NewSet(a).Equal(NewSet(a, b)))
}

func TestWorst_IsOrderIndependent(t *testing.T) {
	assert.Equal(t, StatusFailure, Worst(StatusSuccess, StatusFailure))
	assert.Equal(t, StatusFailure, Worst(StatusFailure, StatusSuccess))
	assert.Equal(t, StatusNeutral, Worst(StatusNeutral, StatusSuccess))
	assert.Equal(t, StatusSuccess, Worst())
	assert.Equal(t,
		Worst(Worst(StatusSuccess, StatusNeutral), StatusFailure),
		Worst(StatusSuccess, Worst(StatusNeutral, StatusFailure)))
}

func TestStatus_Names(t *testing.T) {
	assert.Equal(t, "FAILURE", StatusFailure.String())
	assert.Equal(t, "neutral", StatusNeutral.Conclusion())
	assert.Equal(t, "success", StatusSuccess.Conclusion())
}

func TestFormatError_Unwraps(t *testing.T) {
	cause := errors.New("EOF")
	err := fmt.Errorf("parse report.xml: %w", &FormatError{Format: "xunit", Reason: "bad root", Err: cause})

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "xunit", fe.Format)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invalid xunit input: bad root")
}

func TestCollector_ZeroValue(t *testing.T) {
	var c Collector
	assert.Equal(t, StatusSuccess, c.Status())
	assert.Equal(t, 0, c.Annotations().Len())

	c.Add(New("a.py", 1, 1, LevelWarning, "w"))
	c.Add(New("a.py", 1, 1, LevelWarning, "w"))
	c.Raise(StatusNeutral)
	c.Raise(StatusSuccess)

	assert.Equal(t, 1, c.Annotations().Len())
	assert.Equal(t, StatusNeutral, c.Status())
}

package kos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	r := Result{
		"Zed":   VerdictNotKOS,
		"Alpha": VerdictNotKOS,
		"Bad":   VerdictKOS,
		"Worse": VerdictKOS,
		"Old":   VerdictRedByLast,
		"Who":   VerdictUnknown,
	}

	assert.Equal(t,
		"KOS: Bad, Worse\n\nRed by last: Old\n\nNo Result: Who\n\nNot Kos: Alpha, Zed",
		Summary(r, false))
	assert.Equal(t,
		"KOS: Bad, Worse\n\nRed by last: Old\n\nNo Result: Who",
		Summary(r, true))
	assert.Equal(t, "", Summary(Result{"A": VerdictNotKOS}, true))
	assert.True(t, r.HasHostile())
	assert.False(t, Result{"A": VerdictUnknown}.HasHostile())
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "comma separated", text: "xxx Bad Guy, Other Guy", want: []string{"Bad Guy", "Other Guy"}},
		{name: "double space separated", text: "xxx Bad Guy  Other Guy", want: []string{"Bad Guy", "Other Guy"}},
		{name: "empty parts dropped", text: "xxx a,, b ,", want: []string{"a", "b"}},
		{name: "prefix only", text: "xxx ", want: nil},
		{name: "too short", text: "xx", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRequest(tt.text))
		})
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(0)
	t0 := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	assert.True(t, d.Allow([]string{"a", "b"}, t0))
	assert.False(t, d.Allow([]string{"b", "a"}, t0.Add(5*time.Second)), "same set in another order")
	assert.True(t, d.Allow([]string{"a"}, t0.Add(5*time.Second)))
	assert.True(t, d.Allow([]string{"a", "b"}, t0.Add(DefaultDebounce)))
}

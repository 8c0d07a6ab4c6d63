package gazetteer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

func testGazetteer() *Gazetteer {
	return NewWithNames([]string{"JITA", "AMARR", "F-YH58", "1DQ1-A", "I-IWIL", "I43-IF3", "PERIMETER", "HED-GP"})
}

func TestFindShipNameIn(t *testing.T) {
	g := testGazetteer()

	tests := []struct {
		name     string
		text     string
		wantShip string
		wantText string
		wantOK   bool
	}{
		{
			name:     "longest name wins",
			text:     "I fly a MEGATHRON FEDERATE ISSUE today",
			wantShip: "MEGATHRON FEDERATE ISSUE",
			wantText: "MEGATHRON FEDERATE ISSUE",
			wantOK:   true,
		},
		{
			name:   "no boundary before",
			text:   "XMEGATHRON",
			wantOK: false,
		},
		{
			name:     "lower case with plural",
			text:     "two megathrons on gate",
			wantShip: "MEGATHRON",
			wantText: "megathron",
			wantOK:   true,
		},
		{
			name:     "quantity marker",
			text:     "2xrifter in jita",
			wantShip: "RIFTER",
			wantText: "rifter",
			wantOK:   true,
		},
		{
			name:   "inside another word",
			text:   "drakeyard",
			wantOK: false,
		},
		{
			name:     "second occurrence valid",
			text:     "ydrake drake",
			wantShip: "DRAKE",
			wantText: "drake",
			wantOK:   true,
		},
		{
			name:     "trailing punctuation",
			text:     "sabre!",
			wantShip: "SABRE",
			wantText: "sabre",
			wantOK:   true,
		},
		{
			name:     "non ascii prefix keeps offsets",
			text:     "ÄÖ sabre",
			wantShip: "SABRE",
			wantText: "sabre",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := g.FindShipNameIn(tt.text)
			require.Equal(t, tt.wantOK, ok)

			if !ok {
				return
			}

			assert.Equal(t, tt.wantShip, m.Name)
			assert.Equal(t, tt.wantText, tt.text[m.Start:m.End])
		})
	}
}

func TestMatchSystemWord(t *testing.T) {
	g := testGazetteer()

	tests := []struct {
		name     string
		word     string
		wantName string
		wantKind MatchKind
		wantOK   bool
	}{
		{name: "exact", word: "jita", wantName: "JITA", wantKind: MatchExact, wantOK: true},
		{name: "exact hyphenated", word: "f-yh58", wantName: "F-YH58", wantKind: MatchExact, wantOK: true},
		{name: "prefix", word: "1dq", wantName: "1DQ1-A", wantKind: MatchPrefix, wantOK: true},
		{name: "prefix two chars", word: "PE", wantName: "PERIMETER", wantKind: MatchPrefix, wantOK: true},
		{name: "compressed", word: "FYH58", wantName: "F-YH58", wantKind: MatchCompressed, wantOK: true},
		{name: "compressed prefix", word: "fyh5", wantName: "", wantOK: false},
		{name: "hyphen initials", word: "I4-IF", wantName: "I43-IF3", wantKind: MatchHyphen, wantOK: true},
		{name: "hyphen part too short", word: "F-A", wantOK: false},
		{name: "ignored lower case", word: "in", wantOK: false},
		{name: "ignored mixed case", word: "Is", wantOK: false},
		{name: "single char", word: "J", wantOK: false},
		{name: "unknown", word: "hello", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, kind, ok := g.MatchSystemWord(tt.word)
			require.Equal(t, tt.wantOK, ok)

			if !ok {
				return
			}

			assert.Equal(t, tt.wantName, sys.Name)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestMatchSystemWord_UpperCaseIgnoredWordIsTried(t *testing.T) {
	g := NewWithNames([]string{"INAYA"})

	sys, kind, ok := g.MatchSystemWord("IN")
	require.True(t, ok)
	assert.Equal(t, "INAYA", sys.Name)
	assert.Equal(t, MatchPrefix, kind)
}

func TestFindSystemNameIn(t *testing.T) {
	g := testGazetteer()

	m, ok := g.FindSystemNameIn("red in jita?, 2 ships")
	require.True(t, ok)
	assert.Equal(t, "JITA", m.System.Name)
	assert.Equal(t, "jita", "red in jita?, 2 ships"[m.Start:m.End])

	_, ok = g.FindSystemNameIn("nothing here at all")
	assert.False(t, ok)
}

func TestLoadRegion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "delve.yaml")
	content := "region: Delve\nsystems:\n  - name: 1dq1-a\n  - name: F-YH58\n  - name: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	g, region, err := LoadRegion(path)
	require.NoError(t, err)
	assert.Equal(t, "Delve", region.Name)

	sys, ok := g.System("1DQ1-A")
	require.True(t, ok)
	assert.Equal(t, "1DQ1-A", sys.Name)
	assert.Len(t, g.Systems(), 2)
}

func TestParseRegion_Empty(t *testing.T) {
	_, err := ParseRegion([]byte("region: Nowhere\nsystems: []\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyRegion))
}

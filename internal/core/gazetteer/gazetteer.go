// Package gazetteer holds the lookup tables used to recognise ship and system
// names in chat text.
//
// A Gazetteer is immutable after construction and safe for concurrent reads.
// Ship names are a built-in list; system names come from the currently loaded
// region (see LoadRegion).
package gazetteer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// MatchKind tells which rule matched a system name.
type MatchKind string

const (
	MatchExact      MatchKind = "exact"
	MatchPrefix     MatchKind = "prefix"
	MatchHyphen     MatchKind = "hyphen"
	MatchCompressed MatchKind = "compressed"
)

const (
	prefixMinLen = 2
	prefixMaxLen = 4
	hyphenMinLen = 3
)

// IgnoredChars are stripped from words before system matching and from
// fragments before status classification.
const IgnoredChars = "*?,!"

// ignoredWords are skipped when written in lower or mixed case ("in", "Is").
var ignoredWords = map[string]struct{}{
	"IN": {},
	"IS": {},
	"AS": {},
}

// ShipMatch is a ship name found in a text. Start and End are byte offsets
// into the searched text.
type ShipMatch struct {
	Name  string
	Start int
	End   int
}

// SystemMatch is a system name found in a text. Start and End are byte
// offsets of the matched word in the searched text.
type SystemMatch struct {
	System *domain.System
	Kind   MatchKind
	Word   string
	Start  int
	End    int
}

// Gazetteer looks up ship and system names.
type Gazetteer struct {
	ships   [][]rune
	systems map[string]*domain.System
	names   []string
}

// New creates a gazetteer from ship names and systems. Ship names are tried
// longest first so "APOCALYPSE NAVY ISSUE" wins over "APOCALYPSE".
func New(ships []string, systems []*domain.System) *Gazetteer {
	sorted := make([]string, 0, len(ships))
	for _, s := range ships {
		if s = strings.TrimSpace(strings.ToUpper(s)); s != "" {
			sorted = append(sorted, s)
		}
	}

	sort.Slice(sorted, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(sorted[i]), utf8.RuneCountInString(sorted[j])
		if li != lj {
			return li > lj
		}

		return sorted[i] < sorted[j]
	})

	g := &Gazetteer{
		ships:   make([][]rune, 0, len(sorted)),
		systems: make(map[string]*domain.System, len(systems)),
	}

	for _, s := range sorted {
		g.ships = append(g.ships, []rune(s))
	}

	for _, sys := range systems {
		key := strings.ToUpper(sys.Name)
		if _, exists := g.systems[key]; exists {
			continue
		}

		g.systems[key] = sys
		g.names = append(g.names, key)
	}

	sort.Strings(g.names)

	return g
}

// NewWithNames creates a gazetteer with the default ship list and fresh
// systems for the given names.
func NewWithNames(systemNames []string) *Gazetteer {
	systems := make([]*domain.System, 0, len(systemNames))
	for _, n := range systemNames {
		if n = strings.TrimSpace(n); n != "" {
			systems = append(systems, domain.NewSystem(strings.ToUpper(n)))
		}
	}

	return New(DefaultShips(), systems)
}

// DefaultShips returns a copy of the built-in ship name list.
func DefaultShips() []string {
	out := make([]string, len(defaultShips))
	copy(out, defaultShips)

	return out
}

// System returns the system with the given name, case-insensitively.
func (g *Gazetteer) System(name string) (*domain.System, bool) {
	s, ok := g.systems[strings.ToUpper(name)]
	return s, ok
}

// Systems returns all systems ordered by name.
func (g *Gazetteer) Systems() []*domain.System {
	out := make([]*domain.System, 0, len(g.names))
	for _, n := range g.names {
		out = append(out, g.systems[n])
	}

	return out
}

// FindShipNameIn returns the first ship name (longest names first) found in
// text with a valid word boundary on both sides.
func (g *Gazetteer) FindShipNameIn(text string) (ShipMatch, bool) {
	runes := []rune(text)

	upper := make([]rune, len(runes))
	for i, r := range runes {
		upper[i] = unicode.ToUpper(r)
	}

	for _, ship := range g.ships {
		for from := 0; from+len(ship) <= len(upper); {
			idx := indexRunes(upper[from:], ship)
			if idx < 0 {
				break
			}

			start := from + idx
			end := start + len(ship)

			if shipBoundaryBefore(upper, start) && shipBoundaryAfter(upper, end) {
				return ShipMatch{
					Name:  string(ship),
					Start: len(string(runes[:start])),
					End:   len(string(runes[:end])),
				}, true
			}

			from = start + 1
		}
	}

	return ShipMatch{}, false
}

// shipBoundaryBefore accepts the start of text, a space, or a quantity
// marker such as the "x" in "2xRIFTER".
func shipBoundaryBefore(upper []rune, start int) bool {
	if start == 0 {
		return true
	}

	prev := upper[start-1]
	if prev == ' ' {
		return true
	}

	return prev == 'X' && start >= 2 && unicode.IsDigit(upper[start-2])
}

// shipBoundaryAfter accepts the end of text, a space, a plural "S", or one of
// the ignored punctuation characters.
func shipBoundaryAfter(upper []rune, end int) bool {
	if end == len(upper) {
		return true
	}

	next := upper[end]

	return next == ' ' || next == 'S' || strings.ContainsRune(IgnoredChars, next)
}

// FindSystemNameIn scans the whitespace separated words of text and returns
// the first word that resolves to a known system.
func (g *Gazetteer) FindSystemNameIn(text string) (SystemMatch, bool) {
	for _, tok := range tokenize(text) {
		word := StripIgnoredChars(tok.text)
		if word == "" {
			continue
		}

		sys, kind, ok := g.MatchSystemWord(word)
		if !ok {
			continue
		}

		start, end := tok.start, tok.end
		if idx := strings.Index(tok.text, word); idx >= 0 {
			start = tok.start + idx
			end = start + len(word)
		}

		return SystemMatch{System: sys, Kind: kind, Word: word, Start: start, End: end}, true
	}

	return SystemMatch{}, false
}

// MatchSystemWord resolves a single word. An exact match is always tried
// first; the word's shape then selects one fallback rule: short words
// (2-4 chars) match by prefix, hyphenated words by the initials of both
// parts, anything else by prefix against the system name without hyphens.
func (g *Gazetteer) MatchSystemWord(word string) (*domain.System, MatchKind, bool) {
	uword := strings.ToUpper(word)
	if _, skip := ignoredWords[uword]; skip && uword != word {
		return nil, "", false
	}

	if sys, ok := g.systems[uword]; ok {
		return sys, MatchExact, true
	}

	n := utf8.RuneCountInString(uword)

	switch {
	case n >= prefixMinLen && n <= prefixMaxLen:
		for _, name := range g.names {
			if strings.HasPrefix(name, uword) {
				return g.systems[name], MatchPrefix, true
			}
		}
	case strings.Contains(uword, "-") && n >= hyphenMinLen:
		for _, name := range g.names {
			if hyphenPartsMatch(uword, name) {
				return g.systems[name], MatchHyphen, true
			}
		}
	case n > 1:
		for _, name := range g.names {
			if strings.HasPrefix(strings.ReplaceAll(name, "-", ""), uword) {
				return g.systems[name], MatchCompressed, true
			}
		}
	}

	return nil, "", false
}

// hyphenPartsMatch compares two hyphenated names by the first letter of each
// part. Both names need exactly two parts of at least two characters, which
// keeps short tokens like "F-A" from matching "F-YH58".
func hyphenPartsMatch(word, name string) bool {
	wp := strings.Split(word, "-")
	np := strings.Split(name, "-")

	if len(wp) != 2 || len(np) != 2 {
		return false
	}

	for _, p := range [][]string{wp, np} {
		if utf8.RuneCountInString(p[0]) < 2 || utf8.RuneCountInString(p[1]) < 2 {
			return false
		}
	}

	return firstRune(wp[0]) == firstRune(np[0]) && firstRune(wp[1]) == firstRune(np[1])
}

// StripIgnoredChars removes the ignored punctuation from s.
func StripIgnoredChars(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(IgnoredChars, r) {
			return -1
		}

		return r
	}, s)
}

type token struct {
	text  string
	start int
	end   int
}

func tokenize(text string) []token {
	var (
		tokens []token
		start  = -1
	)

	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, token{text: text[start:i], start: start, end: i})
				start = -1
			}

			continue
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}

	return tokens
}

func indexRunes(haystack, needle []rune) int {
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}

		return i
	}

	return -1
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

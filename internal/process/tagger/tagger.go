package tagger

import (
	"strings"
	"unicode"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/core/gazetteer"
)

var urlPrefixes = []string{"http://", "https://"}

// Tagger finds entity mentions in a Text using a gazetteer.
type Tagger struct {
	gaz *gazetteer.Gazetteer
}

// New creates a Tagger backed by g.
func New(g *gazetteer.Gazetteer) *Tagger {
	return &Tagger{gaz: g}
}

// Tag tags at most one entity, trying ships, then URLs, then systems, and
// reports whether anything was tagged. Call it until it returns false.
func (tg *Tagger) Tag(t *Text) bool {
	if tg.TagShip(t) || tg.TagURL(t) {
		return true
	}

	_, ok := tg.TagSystem(t)

	return ok
}

// TagAll runs every pass to exhaustion and returns the matched systems in
// first-mention order without duplicates.
func (tg *Tagger) TagAll(t *Text) []*domain.System {
	for tg.TagShip(t) {
	}

	for tg.TagURL(t) {
	}

	var (
		systems []*domain.System
		seen    = make(map[*domain.System]struct{})
	)

	for {
		sys, ok := tg.TagSystem(t)
		if !ok {
			break
		}

		if _, dup := seen[sys]; dup {
			continue
		}

		seen[sys] = struct{}{}
		systems = append(systems, sys)
	}

	return systems
}

// TagShip tags the first ship name found in a plain span.
func (tg *Tagger) TagShip(t *Text) bool {
	for i, s := range t.spans {
		if s.Kind != PlainSpan {
			continue
		}

		m, ok := tg.gaz.FindShipNameIn(s.Text)
		if !ok {
			continue
		}

		t.split(i, m.Start, m.End, Span{Kind: ShipSpan, Ship: m.Name})

		return true
	}

	return false
}

// TagSystem tags the first system name found in a plain span and returns
// the matched system.
func (tg *Tagger) TagSystem(t *Text) (*domain.System, bool) {
	for i, s := range t.spans {
		if s.Kind != PlainSpan {
			continue
		}

		m, ok := tg.gaz.FindSystemNameIn(s.Text)
		if !ok {
			continue
		}

		t.split(i, m.Start, m.End, Span{Kind: SystemSpan, System: m.System})

		return m.System, true
	}

	return nil, false
}

// TagURL tags the first http:// or https:// URL found in a plain span. A URL
// runs to the next whitespace or the end of the span.
func (tg *Tagger) TagURL(t *Text) bool {
	for i, s := range t.spans {
		if s.Kind != PlainSpan {
			continue
		}

		start := firstURLIndex(s.Text)
		if start < 0 {
			continue
		}

		end := len(s.Text)
		if n := strings.IndexFunc(s.Text[start:], unicode.IsSpace); n >= 0 {
			end = start + n
		}

		t.split(i, start, end, Span{Kind: LinkSpan})

		return true
	}

	return false
}

func firstURLIndex(s string) int {
	first := -1

	for _, p := range urlPrefixes {
		if idx := strings.Index(s, p); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}

	return first
}

// Package tagger marks ship names, system names and URLs in chat text.
//
// Text is held as a sequence of typed spans. Tagging only ever looks at
// PlainSpan entries: it consumes one plain span, splits it around the hit and
// puts the tagged span in between, so text that is already tagged is never
// scanned again.
package tagger

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// SpanKind identifies what a span holds.
type SpanKind int

const (
	PlainSpan SpanKind = iota
	ShipSpan
	SystemSpan
	LinkSpan
)

func (k SpanKind) String() string {
	switch k {
	case ShipSpan:
		return "ship"
	case SystemSpan:
		return "system"
	case LinkSpan:
		return "link"
	default:
		return "plain"
	}
}

// Styles used when rendering annotated text.
const (
	shipStyle   = "color:#d95911;font-weight:bold"
	systemStyle = "color:#CC8800;font-weight:bold"
	linkStyle   = "color:#28a5ed;font-weight:bold"

	systemHrefPrefix = "mark_system/"
	linkHrefPrefix   = "link/"
)

// Span is one piece of a Text.
type Span struct {
	Kind SpanKind
	Text string
	// Ship is the canonical ship name for ShipSpan.
	Ship string
	// System is the matched system for SystemSpan.
	System *domain.System
}

// Text is chat text split into typed spans.
type Text struct {
	spans []Span
}

// NewText wraps raw text as a single plain span.
func NewText(s string) *Text {
	if s == "" {
		return &Text{}
	}

	return &Text{spans: []Span{{Kind: PlainSpan, Text: s}}}
}

// Spans returns the spans in text order.
func (t *Text) Spans() []Span {
	return t.spans
}

// PlainFragments returns the text of every untagged span in order.
func (t *Text) PlainFragments() []string {
	var out []string

	for _, s := range t.spans {
		if s.Kind == PlainSpan {
			out = append(out, s.Text)
		}
	}

	return out
}

// String returns the text with all markup removed.
func (t *Text) String() string {
	var b strings.Builder
	for _, s := range t.spans {
		b.WriteString(s.Text)
	}

	return b.String()
}

// split replaces plain span i by up to three spans: the text before
// [start,end), the tagged span, and the text after.
func (t *Text) split(i, start, end int, tagged Span) {
	src := t.spans[i].Text
	tagged.Text = src[start:end]

	repl := make([]Span, 0, 3)
	if start > 0 {
		repl = append(repl, Span{Kind: PlainSpan, Text: src[:start]})
	}

	repl = append(repl, tagged)

	if end < len(src) {
		repl = append(repl, Span{Kind: PlainSpan, Text: src[end:]})
	}

	spans := make([]Span, 0, len(t.spans)+len(repl)-1)
	spans = append(spans, t.spans[:i]...)
	spans = append(spans, repl...)
	spans = append(spans, t.spans[i+1:]...)
	t.spans = spans
}

// HTML renders the spans as display markup. Plain text is escaped; tagged
// spans become styled elements.
func (t *Text) HTML() string {
	var buf bytes.Buffer

	for _, s := range t.spans {
		//nolint:errcheck // rendering into a bytes.Buffer cannot fail
		_ = html.Render(&buf, spanNode(s))
	}

	return buf.String()
}

func spanNode(s Span) *html.Node {
	text := &html.Node{Type: html.TextNode, Data: s.Text}

	var el *html.Node

	switch s.Kind {
	case ShipSpan:
		el = element(atom.Span, html.Attribute{Key: "style", Val: shipStyle})
	case SystemSpan:
		el = element(atom.A,
			html.Attribute{Key: "style", Val: systemStyle},
			html.Attribute{Key: "href", Val: systemHrefPrefix + s.System.Name},
		)
	case LinkSpan:
		el = element(atom.A,
			html.Attribute{Key: "style", Val: linkStyle},
			html.Attribute{Key: "href", Val: linkHrefPrefix + s.Text},
		)
	default:
		return text
	}

	el.AppendChild(text)

	return el
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

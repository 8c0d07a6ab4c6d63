package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/intel-watch/internal/core/gazetteer"
)

func newTestTagger() *Tagger {
	return New(gazetteer.NewWithNames([]string{"JITA", "AMARR", "F-YH58", "1DQ1-A"}))
}

func TestTagAll(t *testing.T) {
	tg := newTestTagger()

	text := NewText("2 megathrons in jita, one drake in F-YH58 http://zkill.example/k/1 jita")
	systems := tg.TagAll(text)

	names := make([]string, 0, len(systems))
	for _, s := range systems {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"JITA", "F-YH58"}, names)
	assert.Equal(t, "2 megathrons in jita, one drake in F-YH58 http://zkill.example/k/1 jita", text.String())

	kinds := map[SpanKind]int{}
	for _, s := range text.Spans() {
		kinds[s.Kind]++
	}

	assert.Equal(t, 2, kinds[ShipSpan])
	assert.Equal(t, 1, kinds[LinkSpan])
	assert.Equal(t, 3, kinds[SystemSpan])
}

func TestTag_OneHitPerCall(t *testing.T) {
	tg := newTestTagger()
	text := NewText("rifter jita")

	require.True(t, tg.Tag(text))
	assert.Equal(t, ShipSpan, text.Spans()[0].Kind)

	require.True(t, tg.Tag(text))
	require.False(t, tg.Tag(text))

	assert.Equal(t, []string{" "}, text.PlainFragments())
}

func TestTag_TaggedTextIsNotRescanned(t *testing.T) {
	tg := newTestTagger()
	text := NewText("http://jita.example/amarr")

	tg.TagAll(text)

	require.Len(t, text.Spans(), 1)
	assert.Equal(t, LinkSpan, text.Spans()[0].Kind)
}

func TestTagShip_Boundary(t *testing.T) {
	tg := newTestTagger()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "longer name", text: "I fly a MEGATHRON FEDERATE ISSUE today", want: "MEGATHRON FEDERATE ISSUE"},
		{name: "glued prefix", text: "XMEGATHRON", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := NewText(tt.text)
			ok := tg.TagShip(text)

			if tt.want == "" {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)

			var got string

			for _, s := range text.Spans() {
				if s.Kind == ShipSpan {
					got = s.Ship
				}
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTML(t *testing.T) {
	tg := newTestTagger()
	text := NewText("rifter <b> jita https://x.example/a?b=1&c=2")
	tg.TagAll(text)

	got := text.HTML()

	assert.Contains(t, got, `<span style="color:#d95911;font-weight:bold">rifter</span>`)
	assert.Contains(t, got, `&lt;b&gt;`)
	assert.Contains(t, got, `<a style="color:#CC8800;font-weight:bold" href="mark_system/JITA">jita</a>`)
	assert.Contains(t, got, `href="link/https://x.example/a?b=1&amp;c=2"`)
}

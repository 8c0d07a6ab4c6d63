// Package chatparser turns chat-log lines into classified messages.
//
// Intel rooms go through ParseLine: header parsing, the KOS and sound-test
// triggers, deduplication, entity tagging and status classification. Local
// rooms go through ParseLocal, which only looks at the system-change notices
// posted by the game and feeds the location table.
package chatparser

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/core/gazetteer"
	"github.com/lueurxax/intel-watch/internal/process/classifier"
	"github.com/lueurxax/intel-watch/internal/process/intel"
	"github.com/lueurxax/intel-watch/internal/process/tagger"
)

const (
	// DefaultLookbackDepth is how many earlier messages of the same room a
	// system-less "clear" is compared against.
	DefaultLookbackDepth = 2

	kosPrefix       = "XXX "
	kosPrefixLower  = "xxx "
	kosRoomPrefix   = "="
	soundTestPrefix = "VINTELSOUND_TEST"

	logFieldRoom = "room"
	logFieldUser = "user"
)

// DefaultLocalRooms are the names the game client uses for local chat in its
// supported languages.
var DefaultLocalRooms = []string{"Local", "Lokal", "Локальный"}

// Config holds the tunables of a Parser.
type Config struct {
	Rooms         []string
	LocalRooms    []string
	LookbackDepth int
}

// Parser builds messages from chat lines. It is not safe for concurrent use.
type Parser struct {
	gaz        *gazetteer.Gazetteer
	tagger     *tagger.Tagger
	rooms      map[string]struct{}
	localRooms map[string]struct{}
	known      *KnownMessages
	locations  *intel.Locations
	lookback   int
	logger     *zerolog.Logger
}

// New creates a parser over the systems of g. Location facts from local chat
// are written to locations.
func New(g *gazetteer.Gazetteer, locations *intel.Locations, cfg Config, logger *zerolog.Logger) *Parser {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if locations == nil {
		locations = intel.NewLocations()
	}

	if cfg.LookbackDepth <= 0 {
		cfg.LookbackDepth = DefaultLookbackDepth
	}

	if len(cfg.LocalRooms) == 0 {
		cfg.LocalRooms = DefaultLocalRooms
	}

	p := &Parser{
		gaz:        g,
		tagger:     tagger.New(g),
		localRooms: toSet(cfg.LocalRooms),
		known:      NewKnownMessages(),
		locations:  locations,
		lookback:   cfg.LookbackDepth,
		logger:     logger,
	}
	p.SetRooms(cfg.Rooms)

	return p
}

// SetRooms replaces the set of monitored intel rooms.
func (p *Parser) SetRooms(rooms []string) {
	p.rooms = toSet(rooms)
}

// Rooms returns the monitored intel rooms, sorted.
func (p *Parser) Rooms() []string {
	out := make([]string, 0, len(p.rooms))
	for r := range p.rooms {
		out = append(out, r)
	}

	sort.Strings(out)

	return out
}

// IsMonitored reports whether room is one of the intel rooms.
func (p *Parser) IsMonitored(room string) bool {
	_, ok := p.rooms[room]
	return ok
}

// IsLocalRoom reports whether room is a local chat room.
func (p *Parser) IsLocalRoom(room string) bool {
	_, ok := p.localRooms[room]
	return ok
}

// Gazetteer returns the lookup tables the parser tags with.
func (p *Parser) Gazetteer() *gazetteer.Gazetteer {
	return p.gaz
}

// Known exposes the message log, mainly for pruning.
func (p *Parser) Known() *KnownMessages {
	return p.known
}

// Locations returns the location table the parser writes to.
func (p *Parser) Locations() *intel.Locations {
	return p.locations
}

// ParseLine classifies one line of an intel room. The second result is false
// when the line produces no message: a malformed header, or a room that is
// not monitored.
func (p *Parser) ParseLine(room, line string) (*domain.Message, bool) {
	h, ok := ParseHeader(line)
	if !ok {
		return nil, false
	}

	upperText := strings.ToUpper(h.Text)

	switch {
	case strings.HasPrefix(upperText, kosPrefix):
		return p.plainMessage(room, h, kosPrefixLower+h.Text[len(kosPrefix):], domain.StatusKOSRequest), true
	case strings.HasPrefix(room, kosRoomPrefix):
		return p.plainMessage(room, h, kosPrefixLower+h.Text, domain.StatusKOSRequest), true
	case strings.HasPrefix(upperText, soundTestPrefix):
		return p.plainMessage(room, h, h.Text, domain.StatusSoundTest), true
	}

	if !p.IsMonitored(room) {
		return nil, false
	}

	msg := &domain.Message{
		Room:      room,
		RawText:   h.Text,
		Timestamp: h.Timestamp,
		User:      h.User,
	}

	// The same line shows up once per client when several accounts are logged in.
	if p.known.Contains(msg) {
		msg.Status = domain.StatusIgnore
		msg.AnnotatedText = tagger.NewText(h.Text).HTML()

		p.logger.Debug().Str(logFieldRoom, room).Str(logFieldUser, h.User).Msg("duplicate intel line")

		return msg, true
	}

	text := tagger.NewText(h.Text)
	msg.Systems = p.tagger.TagAll(text)
	msg.Status = classifier.ClassifyOrAlarm(text.PlainFragments())
	msg.AnnotatedText = text.HTML()

	if msg.Status == domain.StatusClear && !msg.HasSystems() {
		msg.Systems = p.resolveClear(room)
	}

	p.known.Append(msg)

	for _, s := range msg.Systems {
		s.AddMessage(msg)
	}

	return msg, true
}

// resolveClear looks for a recent request in room that named systems and
// returns a copy of them.
func (p *Parser) resolveClear(room string) []*domain.System {
	for _, prev := range p.known.RecentInRoom(room, p.lookback) {
		if prev.Status == domain.StatusRequest && prev.HasSystems() {
			out := make([]*domain.System, len(prev.Systems))
			copy(out, prev.Systems)

			return out
		}
	}

	return nil
}

// ParseLocal handles one line of charname's local chat. Only system-change
// notices produce a message, and only when the location table accepts the
// line as newer than what it already knows.
func (p *Parser) ParseLocal(charname, line string) (*domain.Message, bool) {
	h, ok := ParseHeader(line)
	if !ok {
		return nil, false
	}

	if h.User != domain.EVESystemUser && h.User != domain.EVESystemUserHyphenated {
		return nil, false
	}

	system := domain.UnknownSystemName
	status := domain.StatusIgnore

	if parts := strings.SplitN(h.Text, ":", 3); len(parts) > 1 {
		system = strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(parts[1], "*", "")))
		status = domain.StatusLocation
	}

	if !p.locations.Apply(charname, system, h.Timestamp) {
		return nil, false
	}

	return &domain.Message{
		RawText:        h.Text,
		AnnotatedText:  tagger.NewText(h.Text).HTML(),
		Timestamp:      h.Timestamp,
		User:           charname,
		LocationSystem: system,
		Status:         status,
	}, true
}

func (p *Parser) plainMessage(room string, h Header, text string, status domain.Status) *domain.Message {
	return &domain.Message{
		Room:          room,
		RawText:       text,
		AnnotatedText: tagger.NewText(text).HTML(),
		Timestamp:     h.Timestamp,
		User:          h.User,
		Status:        status,
	}
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out[it] = struct{}{}
		}
	}

	return out
}

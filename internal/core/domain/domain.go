// Package domain holds the plain data types shared by the parsing core and
// its collaborators. Nothing here depends on a UI or transport.
package domain

import (
	"time"
)

// Status is the classification of a single chat line.
type Status string

// Status values. The string forms are what collaborators see in the feed.
const (
	StatusIgnore     Status = "ignore"
	StatusUnknown    Status = "unknown"
	StatusNotChange  Status = "no change"
	StatusClear      Status = "clear"
	StatusAlarm      Status = "alarm"
	StatusWasAlarmed Status = "was alarmed"
	StatusRequest    Status = "request"
	StatusLocation   Status = "location"
	StatusKOSRequest Status = "kos request"
	StatusSoundTest  Status = "soundtest"
)

const (
	// UnknownSystemName marks a location that could not be resolved.
	UnknownSystemName = "?"

	// LogTimestampLayout is the client's log timestamp format (YYYY.MM.DD HH:MM:SS).
	LogTimestampLayout = "2006.01.02 15:04:05"

	EVESystemUser           = "EVE System"
	EVESystemUserHyphenated = "EVE-System"
)

// AffectsSystemStatus reports whether a status, applied to a system, changes
// what the system shows. Requests and "no change" never do.
func (s Status) AffectsSystemStatus() bool {
	return s != StatusRequest && s != StatusNotChange
}

// System is a known solar system. The core treats it as an opaque key:
// it reads Name and appends messages that mention the system.
type System struct {
	Name     string
	messages []*Message
}

// NewSystem creates a system with the given canonical (upper-case) name.
func NewSystem(name string) *System {
	return &System{Name: name}
}

// AddMessage records a message that mentions this system.
func (s *System) AddMessage(m *Message) {
	s.messages = append(s.messages, m)
}

// Messages returns the messages recorded for this system, oldest first.
func (s *System) Messages() []*Message {
	return s.messages
}

// PruneMessages drops messages with a timestamp before cutoff and returns how
// many were removed.
func (s *System) PruneMessages(cutoff time.Time) int {
	kept := s.messages[:0]

	for _, m := range s.messages {
		if !m.Timestamp.Before(cutoff) {
			kept = append(kept, m)
		}
	}

	removed := len(s.messages) - len(kept)

	for i := len(kept); i < len(s.messages); i++ {
		s.messages[i] = nil
	}

	s.messages = kept

	return removed
}

// MessageKey is the deduplication identity of a message.
type MessageKey struct {
	Room      string
	RawText   string
	Timestamp time.Time
	User      string
}

// Message is one classified chat-log entry.
type Message struct {
	Room          string
	RawText       string
	AnnotatedText string
	Timestamp     time.Time
	User          string
	Systems       []*System
	// LocationSystem carries the system name of a LOCATION or local IGNORE
	// message. Local chat names need not exist in the gazetteer.
	LocationSystem string
	Status         Status
}

// Key returns the (room, raw text, timestamp, user) dedup key.
func (m *Message) Key() MessageKey {
	return MessageKey{
		Room:      m.Room,
		RawText:   m.RawText,
		Timestamp: m.Timestamp,
		User:      m.User,
	}
}

// Equal reports whether two messages share the dedup key.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}

	return m.Key() == other.Key()
}

// SystemNames returns the names of the mentioned systems in mention order.
func (m *Message) SystemNames() []string {
	names := make([]string, 0, len(m.Systems))
	for _, s := range m.Systems {
		names = append(names, s.Name)
	}

	return names
}

// HasSystems reports whether the message mentions at least one system.
func (m *Message) HasSystems() bool {
	return len(m.Systems) > 0
}

// LocationFact is the last known system of a character.
type LocationFact struct {
	System     string
	LastUpdate time.Time
}

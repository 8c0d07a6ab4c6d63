// Package intel keeps the rolling picture built from classified messages:
// where each character is and what state each system is in.
//
// None of the types here are synchronised. They are owned by the single
// goroutine that drives the parser.
package intel

import (
	"time"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// Locations maps character names to their last known system.
type Locations struct {
	facts map[string]domain.LocationFact
}

// NewLocations creates an empty location table.
func NewLocations() *Locations {
	return &Locations{facts: make(map[string]domain.LocationFact)}
}

// Apply records that charname was in system at ts. The fact is only stored
// when ts is strictly newer than what is already known for the character, so
// late lines from an older log never move a character back. It reports
// whether the fact was stored.
func (l *Locations) Apply(charname, system string, ts time.Time) bool {
	if cur, ok := l.facts[charname]; ok && !ts.After(cur.LastUpdate) {
		return false
	}

	l.facts[charname] = domain.LocationFact{System: system, LastUpdate: ts}

	return true
}

// LocationOf returns the last known location of charname.
func (l *Locations) LocationOf(charname string) (domain.LocationFact, bool) {
	f, ok := l.facts[charname]
	return f, ok
}

// All returns a copy of every known location.
func (l *Locations) All() map[string]domain.LocationFact {
	out := make(map[string]domain.LocationFact, len(l.facts))
	for k, v := range l.facts {
		out[k] = v
	}

	return out
}

package intel

import (
	"sort"
	"time"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// AlarmBand buckets the age of an alarm for display.
type AlarmBand int

const (
	BandNone AlarmBand = iota - 1
	BandFresh
	BandRecent
	BandFading
	BandOld
	BandStale
)

var bandLimits = []struct {
	maxAge time.Duration
	band   AlarmBand
}{
	{4 * time.Minute, BandFresh},
	{10 * time.Minute, BandRecent},
	{15 * time.Minute, BandFading},
	{25 * time.Minute, BandOld},
}

func (b AlarmBand) String() string {
	switch b {
	case BandFresh:
		return "fresh"
	case BandRecent:
		return "recent"
	case BandFading:
		return "fading"
	case BandOld:
		return "old"
	case BandStale:
		return "stale"
	default:
		return "none"
	}
}

var boardStatuses = map[domain.Status]struct{}{
	domain.StatusUnknown:    {},
	domain.StatusClear:      {},
	domain.StatusAlarm:      {},
	domain.StatusWasAlarmed: {},
}

// SystemState is what the board knows about one system.
type SystemState struct {
	Status domain.Status
	// Since is when the system was last reported as alarm or clear.
	Since time.Time
}

// Board tracks the status of each system named in intel.
type Board struct {
	states map[string]SystemState
}

// NewBoard creates an empty board. Systems not on the board are unknown.
func NewBoard() *Board {
	return &Board{states: make(map[string]SystemState)}
}

// SetStatus applies status to system. Requests and "no change" never alter
// the stored status, and neither do statuses that do not describe a system.
// It reports whether the stored state changed.
func (b *Board) SetStatus(system string, status domain.Status, at time.Time) bool {
	if !status.AffectsSystemStatus() {
		return false
	}

	if _, ok := boardStatuses[status]; !ok {
		return false
	}

	st := b.states[system]
	prev := st

	st.Status = status
	if status == domain.StatusAlarm || status == domain.StatusClear {
		st.Since = at
	}

	b.states[system] = st

	return st != prev
}

// StatusOf returns the status of system, StatusUnknown if nothing is known.
func (b *Board) StatusOf(system string) domain.Status {
	if st, ok := b.states[system]; ok && st.Status != "" {
		return st.Status
	}

	return domain.StatusUnknown
}

// State returns the full state of system.
func (b *Board) State(system string) (SystemState, bool) {
	st, ok := b.states[system]
	return st, ok
}

// AlarmAge returns how long ago the system was last reported alarm or clear.
// The second result is false for systems without such a report.
func (b *Board) AlarmAge(system string, now time.Time) (time.Duration, bool) {
	st, ok := b.states[system]
	if !ok || st.Since.IsZero() {
		return 0, false
	}

	switch st.Status {
	case domain.StatusAlarm, domain.StatusWasAlarmed, domain.StatusClear:
		return now.Sub(st.Since), true
	default:
		return 0, false
	}
}

// AlarmBand returns the age band of an alarmed system, BandNone when the
// system is not in alarm.
func (b *Board) AlarmBand(system string, now time.Time) AlarmBand {
	if b.StatusOf(system) != domain.StatusAlarm {
		return BandNone
	}

	age, _ := b.AlarmAge(system, now)

	return bandFor(age)
}

func bandFor(age time.Duration) AlarmBand {
	for _, l := range bandLimits {
		if age < l.maxAge {
			return l.band
		}
	}

	return BandStale
}

// Systems returns the names of all systems on the board, sorted.
func (b *Board) Systems() []string {
	out := make([]string, 0, len(b.states))
	for name := range b.states {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

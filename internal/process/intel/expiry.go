package intel

import (
	"time"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// DefaultMessageTTL is how long intel stays attached to a system.
const DefaultMessageTTL = 20 * time.Minute

// PruneExpired drops messages older than ttl (relative to now) from every
// system and returns the number removed.
func PruneExpired(systems []*domain.System, now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)
	removed := 0

	for _, s := range systems {
		removed += s.PruneMessages(cutoff)
	}

	return removed
}

package chatparser

import (
	"time"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// KnownMessages is the insertion-ordered log of messages built during a run.
// It answers duplicate checks and the backward search used to attach a
// system-less "clear" to an earlier request.
type KnownMessages struct {
	msgs []*domain.Message
	keys map[domain.MessageKey]int
}

// NewKnownMessages creates an empty store.
func NewKnownMessages() *KnownMessages {
	return &KnownMessages{keys: make(map[domain.MessageKey]int)}
}

// Contains reports whether a message with the same dedup key was stored.
func (k *KnownMessages) Contains(m *domain.Message) bool {
	_, ok := k.keys[m.Key()]
	return ok
}

// Append stores m.
func (k *KnownMessages) Append(m *domain.Message) {
	k.msgs = append(k.msgs, m)
	k.keys[m.Key()]++
}

// Len returns the number of stored messages.
func (k *KnownMessages) Len() int {
	return len(k.msgs)
}

// RecentInRoom returns up to n messages of room, most recent first.
func (k *KnownMessages) RecentInRoom(room string, n int) []*domain.Message {
	var out []*domain.Message

	for i := len(k.msgs) - 1; i >= 0 && len(out) < n; i-- {
		if k.msgs[i].Room == room {
			out = append(out, k.msgs[i])
		}
	}

	return out
}

// Prune drops messages with a timestamp before cutoff and returns how many
// were removed. Pruned messages no longer count as duplicates.
func (k *KnownMessages) Prune(cutoff time.Time) int {
	kept := make([]*domain.Message, 0, len(k.msgs))

	for _, m := range k.msgs {
		if !m.Timestamp.Before(cutoff) {
			kept = append(kept, m)
			continue
		}

		key := m.Key()
		if k.keys[key]--; k.keys[key] <= 0 {
			delete(k.keys, key)
		}
	}

	removed := len(k.msgs) - len(kept)
	k.msgs = kept

	return removed
}

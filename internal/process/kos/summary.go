package kos

import (
	"sort"
	"strings"
	"time"
)

const (
	// DefaultDebounce drops a repeated name set from a second client.
	DefaultDebounce = 10 * time.Second

	requestPrefixLen = len("xxx ")
	groupSeparator   = "\n\n"
)

// Summary renders a result as text: one paragraph per verdict in the order
// KOS, red by last, unknown, not KOS. With onlyKOS the not-KOS paragraph is
// left out.
func Summary(r Result, onlyKOS bool) string {
	var paragraphs []string

	for _, v := range summaryOrder {
		if onlyKOS && v == VerdictNotKOS {
			continue
		}

		names := r.Names(v)
		if len(names) == 0 {
			continue
		}

		paragraphs = append(paragraphs, string(v)+": "+strings.Join(names, ", "))
	}

	return strings.Join(paragraphs, groupSeparator)
}

// ParseRequest extracts candidate names from the text of a KOS request
// message ("xxx name one, name two"). Names are separated by commas or by
// two consecutive spaces, as produced when pasting from the client.
func ParseRequest(text string) []string {
	if len(text) < requestPrefixLen {
		return nil
	}

	body := strings.ReplaceAll(text[requestPrefixLen:], "  ", ",")

	var names []string

	for _, part := range strings.Split(body, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}

	return names
}

// Debouncer drops identical name sets requested again within a window. It
// is not safe for concurrent use.
type Debouncer struct {
	window time.Duration
	seen   map[string]time.Time
}

// NewDebouncer creates a debouncer; a non-positive window uses DefaultDebounce.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}

	return &Debouncer{window: window, seen: make(map[string]time.Time)}
}

// Allow reports whether a request for names at now should go through, and
// records it if so.
func (d *Debouncer) Allow(names []string, now time.Time) bool {
	key := requestKey(names)

	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		return false
	}

	for k, t := range d.seen {
		if now.Sub(t) >= d.window {
			delete(d.seen, k)
		}
	}

	d.seen[key] = now

	return true
}

func requestKey(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	return strings.Join(sorted, "\x00")
}

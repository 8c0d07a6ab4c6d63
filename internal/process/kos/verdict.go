// Package kos checks character names against a kill-on-sight roster.
//
// A character is KOS when the roster flags them, their corporation or their
// alliance. Characters sitting in an NPC corporation (or unknown to the
// roster) are judged by the last player corporation in their employment
// history, which needs the identity service.
package kos

import (
	"sort"
)

// Verdict is the outcome for one character.
type Verdict string

const (
	VerdictKOS       Verdict = "KOS"
	VerdictRedByLast Verdict = "Red by last"
	VerdictUnknown   Verdict = "No Result"
	VerdictNotKOS    Verdict = "Not Kos"
)

// summaryOrder is the order verdict groups appear in a summary.
var summaryOrder = []Verdict{VerdictKOS, VerdictRedByLast, VerdictUnknown, VerdictNotKOS}

// Verdicts returns all verdicts in summary order.
func Verdicts() []Verdict {
	return append([]Verdict(nil), summaryOrder...)
}

// Hostile reports whether the verdict warrants a warning.
func (v Verdict) Hostile() bool {
	return v == VerdictKOS || v == VerdictRedByLast
}

// Result maps each requested name to its verdict.
type Result map[string]Verdict

// HasHostile reports whether any character is KOS or red by last.
func (r Result) HasHostile() bool {
	for _, v := range r {
		if v.Hostile() {
			return true
		}
	}

	return false
}

// Names returns the names with verdict v, sorted.
func (r Result) Names(v Verdict) []string {
	var out []string

	for name, got := range r {
		if got == v {
			out = append(out, name)
		}
	}

	sort.Strings(out)

	return out
}

// Package classifier decides the intel status of a chat message from the
// text that was left untagged.
package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/core/gazetteer"
)

var (
	clearWords   = []string{"CLEAR", "CLR"}
	requestWords = []string{"STAT", "STATUS"}

	blueOnlyPhrases = map[string]struct{}{
		"BLUE":       {},
		"BLUES ONLY": {},
		"ONLY BLUE":  {},
		"STILL BLUE": {},
		"ALL BLUES":  {},
	}
)

// Classify looks at fragments in order and returns the first verdict. The
// second result is false when no fragment says anything about status; callers
// treat that as an alarm.
func Classify(fragments []string) (domain.Status, bool) {
	for _, f := range fragments {
		if status, ok := classifyFragment(f); ok {
			return status, true
		}
	}

	return "", false
}

// ClassifyOrAlarm is Classify with the alarm default applied.
func ClassifyOrAlarm(fragments []string) domain.Status {
	if status, ok := Classify(fragments); ok {
		return status
	}

	return domain.StatusAlarm
}

func classifyFragment(fragment string) (domain.Status, bool) {
	utext := cases.Upper(language.Und).String(strings.TrimSpace(fragment))
	words := strings.Fields(gazetteer.StripIgnoredChars(utext))

	switch {
	case containsAny(words, clearWords) && !strings.HasSuffix(utext, "?"):
		return domain.StatusClear, true
	case containsAny(words, requestWords):
		return domain.StatusRequest, true
	case strings.Contains(utext, "?"):
		return domain.StatusRequest, true
	}

	if _, ok := blueOnlyPhrases[utext]; ok {
		return domain.StatusClear, true
	}

	return "", false
}

func containsAny(words, targets []string) bool {
	for _, w := range words {
		for _, t := range targets {
			if w == t {
				return true
			}
		}
	}

	return false
}

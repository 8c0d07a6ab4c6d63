package logtracker

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

const (
	listenerMarker = "Listener:"
	sessionMarker  = "Session started:"
)

// The client names logs "<room>_YYYYMMDD_HHMMSS.txt"; newer clients append
// "_<character id>".
var logFileName = regexp.MustCompile(`^(.+)_\d{8}_\d{6}(?:_\d+)?\.txt$`)

// RoomName returns the chat room a log file belongs to. The second result is
// false when the name does not look like a chat log.
func RoomName(path string) (string, bool) {
	m := logFileName.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return "", false
	}

	return m[1], true
}

// FileState is the tracking record of one chat-log file.
type FileState struct {
	Path  string
	Room  string
	Local bool
	// Lines is the number of complete lines already consumed.
	Lines        int
	Charname     string
	SessionStart time.Time
}

// HasIdentity reports whether the character and session of a local chat
// file are known.
func (s *FileState) HasIdentity() bool {
	return s.Charname != "" && !s.SessionStart.IsZero()
}

// extractIdentity scans the header of a local chat log for the listening
// character and the session start. Both must be present.
func (s *FileState) extractIdentity(lines []string) {
	var (
		charname string
		session  time.Time
	)

	for _, l := range lines {
		switch {
		case strings.Contains(l, listenerMarker):
			charname = afterColon(l)
		case strings.Contains(l, sessionMarker):
			if ts, err := time.Parse(domain.LogTimestampLayout, afterColon(l)); err == nil {
				session = ts
			}
		}

		if charname != "" && !session.IsZero() {
			s.Charname = charname
			s.SessionStart = session

			return
		}
	}
}

func afterColon(l string) string {
	idx := strings.IndexByte(l, ':')
	if idx < 0 {
		return ""
	}

	return strings.TrimSpace(l[idx+1:])
}

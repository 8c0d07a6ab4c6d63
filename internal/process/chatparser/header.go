package chatparser

import (
	"strings"
	"time"

	"github.com/lueurxax/intel-watch/internal/core/domain"
)

// Header is the parsed "[ YYYY.MM.DD HH:MM:SS ] User > text" prefix of a
// chat line.
type Header struct {
	Timestamp time.Time
	User      string
	Text      string
}

// ParseHeader splits a chat line into timestamp, user and text. Lines
// without a valid bracketed timestamp or a user separator are rejected.
func ParseHeader(line string) (Header, bool) {
	open := strings.IndexByte(line, '[')
	end := strings.IndexByte(line, ']')

	if open < 0 || end < open {
		return Header{}, false
	}

	ts, err := time.Parse(domain.LogTimestampLayout, strings.TrimSpace(line[open+1:end]))
	if err != nil {
		return Header{}, false
	}

	rest := line[end+1:]

	sep := strings.IndexByte(rest, '>')
	if sep < 0 {
		return Header{}, false
	}

	return Header{
		Timestamp: ts,
		User:      strings.TrimSpace(rest[:sep]),
		Text:      strings.TrimSpace(rest[sep+1:]),
	}, true
}

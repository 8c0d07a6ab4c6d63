package logtracker

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

// readLines reads a whole chat log and returns its complete lines. The game
// writes UTF-16LE with a BOM; a trailing line without a newline is still
// being written and is left out.
func readLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chat log: %w", err)
	}

	text, err := decodeUTF16LE(raw)
	if err != nil {
		return nil, err
	}

	return completeLines(text), nil
}

func decodeUTF16LE(raw []byte) (string, error) {
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("odd byte count %d: %w", len(raw), errors.ErrUndecodable)
	}

	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()

	out, err := dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode utf-16: %w: %w", errors.ErrUndecodable, err)
	}

	return string(out), nil
}

func completeLines(text string) []string {
	parts := strings.Split(text, "\n")

	lines := parts[:len(parts)-1]
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}

	return lines
}

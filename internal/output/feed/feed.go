// Package feed writes intel events as newline-delimited JSON for whatever
// sits downstream (an overlay, a bot, a terminal).
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/process/intel"
	"github.com/lueurxax/intel-watch/internal/process/kos"
)

// Event types.
const (
	TypeMessage   = "message"
	TypeLocation  = "location"
	TypeStatus    = "status"
	TypeKOSResult = "kos_result"
	TypeKOSError  = "kos_error"
	TypeFileError = "file_error"
)

// Event is one feed line. Only the fields of its Type are set.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`

	Room      string   `json:"room,omitempty"`
	User      string   `json:"user,omitempty"`
	Status    string   `json:"status,omitempty"`
	Text      string   `json:"text,omitempty"`
	Annotated string   `json:"annotated,omitempty"`
	Systems   []string `json:"systems,omitempty"`

	Character string `json:"character,omitempty"`
	System    string `json:"system,omitempty"`
	Since     string `json:"since,omitempty"`
	Band      string `json:"band,omitempty"`

	RequestID string              `json:"request_id,omitempty"`
	Names     []string            `json:"names,omitempty"`
	Hostile   bool                `json:"hostile,omitempty"`
	Verdicts  map[string][]string `json:"verdicts,omitempty"`

	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// Writer serializes events to an io.Writer. It is safe for concurrent use:
// the watch loop and the KOS worker write through the same Writer.
type Writer struct {
	mu  sync.Mutex
	enc *json.Encoder
	now func() time.Time
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return &Writer{enc: enc, now: time.Now}
}

// Write encodes one event.
func (w *Writer) Write(e Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if e.At.IsZero() {
		e.At = w.now().UTC()
	}

	if err := w.enc.Encode(e); err != nil {
		return fmt.Errorf("write %s event: %w", e.Type, err)
	}

	return nil
}

// Message writes a classified chat message.
func (w *Writer) Message(m *domain.Message) error {
	return w.Write(Event{
		Type:      TypeMessage,
		At:        m.Timestamp,
		Room:      m.Room,
		User:      m.User,
		Status:    string(m.Status),
		Text:      m.RawText,
		Annotated: m.AnnotatedText,
		Systems:   m.SystemNames(),
	})
}

// Location writes a character location change.
func (w *Writer) Location(m *domain.Message) error {
	return w.Write(Event{
		Type:      TypeLocation,
		At:        m.Timestamp,
		Character: m.User,
		System:    m.LocationSystem,
	})
}

// Status writes the board state of one system as seen at now.
func (w *Writer) Status(b *intel.Board, system string, now time.Time) error {
	e := Event{
		Type:   TypeStatus,
		At:     now,
		System: system,
		Status: string(b.StatusOf(system)),
	}

	if st, ok := b.State(system); ok && !st.Since.IsZero() {
		e.Since = humanize.RelTime(st.Since, now, "ago", "from now")
	}

	if band := b.AlarmBand(system, now); band != intel.BandNone {
		e.Band = band.String()
	}

	return w.Write(e)
}

// KOSOutcome writes a finished KOS check. A failed check becomes a
// kos_error event, never an empty result.
func (w *Writer) KOSOutcome(o kos.Outcome) error {
	e := Event{
		RequestID: o.Request.ID,
		Names:     o.Request.Names,
		Room:      o.Request.Source,
	}

	if o.Err != nil {
		e.Type = TypeKOSError
		e.Error = o.Err.Error()

		return w.Write(e)
	}

	e.Type = TypeKOSResult
	e.Text = o.Text
	e.Hostile = o.Hostile
	e.Verdicts = make(map[string][]string)

	for _, v := range kos.Verdicts() {
		if names := o.Result.Names(v); len(names) > 0 {
			e.Verdicts[string(v)] = names
		}
	}

	return w.Write(e)
}

// FileError writes a file that was put on the ignore list.
func (w *Writer) FileError(path string, err error) error {
	return w.Write(Event{
		Type:  TypeFileError,
		Path:  path,
		Error: err.Error(),
	})
}

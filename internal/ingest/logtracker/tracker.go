// Package logtracker follows the chat-log directory of the game client. It
// remembers how many lines of each file were consumed and hands only new
// lines to the parser, so polling the same unchanged file twice yields
// nothing.
package logtracker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/core/errors"
	"github.com/lueurxax/intel-watch/internal/platform/observability"
)

const (
	// DefaultRetention is how old a file may be and still be tracked.
	DefaultRetention = 24 * time.Hour

	// Shorter lines cannot hold a header and are skipped.
	minLineLength = 3

	logFieldPath  = "path"
	logFieldRoom  = "room"
	logFieldLines = "lines"
)

// LineParser classifies lines. *chatparser.Parser implements it.
type LineParser interface {
	ParseLine(room, line string) (*domain.Message, bool)
	ParseLocal(charname, line string) (*domain.Message, bool)
	IsLocalRoom(room string) bool
}

// FileError is reported once for a file that could not be read or decoded.
// The file is ignored for the rest of the run.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("chat log %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Config holds the tunables of a Tracker.
type Config struct {
	Retention time.Duration
	// OnFileError receives each ignored file once.
	OnFileError func(*FileError)
	// Now is the clock used for retention checks.
	Now func() time.Time
}

// Tracker keeps per-file read state for one log directory. It is not safe
// for concurrent use.
type Tracker struct {
	dir         string
	parser      LineParser
	retention   time.Duration
	onFileError func(*FileError)
	now         func() time.Time
	files       map[string]*FileState
	ignored     map[string]struct{}
	logger      *zerolog.Logger
	// primed is set once the start-up listing has been taken.
	primed bool
}

// New creates a tracker for dir. Call DirectoryChanged to pick up the files
// already present.
func New(dir string, parser LineParser, cfg Config, logger *zerolog.Logger) *Tracker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Tracker{
		dir:         dir,
		parser:      parser,
		retention:   cfg.Retention,
		onFileError: cfg.OnFileError,
		now:         cfg.Now,
		files:       make(map[string]*FileState),
		ignored:     make(map[string]struct{}),
		logger:      logger,
	}
}

// Dir returns the watched directory.
func (t *Tracker) Dir() string {
	return t.dir
}

// State returns a copy of the tracking record for path.
func (t *Tracker) State(path string) (FileState, bool) {
	st, ok := t.files[path]
	if !ok {
		return FileState{}, false
	}

	return *st, true
}

// Tracked returns the tracked paths, sorted.
func (t *Tracker) Tracked() []string {
	out := make([]string, 0, len(t.files))
	for p := range t.files {
		out = append(out, p)
	}

	sort.Strings(out)

	return out
}

// IsIgnored reports whether path is on the ignore list.
func (t *Tracker) IsIgnored(path string) bool {
	_, ok := t.ignored[path]
	return ok
}

// DirectoryChanged re-lists the directory and returns the newly tracked
// paths. On the first successful call every chat log modified within the
// retention window gets a baseline read, so history is not replayed. Files
// that appear in later calls were created while running and are tracked
// from their first line; pass them to FileAppended to get their messages.
// Files that vanished or aged out are forgotten. A missing directory is the
// only error.
func (t *Tracker) DirectoryChanged() ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", t.dir, errors.ErrLogDirMissing)
		}

		return nil, fmt.Errorf("list chat logs: %w", err)
	}

	cutoff := t.now().Add(-t.retention)
	present := make(map[string]struct{}, len(entries))

	var added []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}

		path := filepath.Join(t.dir, e.Name())

		info, err := e.Info()
		if err != nil || info.ModTime().Before(cutoff) {
			continue
		}

		present[path] = struct{}{}

		if _, ok := t.files[path]; ok || t.IsIgnored(path) {
			continue
		}

		if t.primed {
			if err := t.trackFromStart(path); err != nil {
				continue
			}
		} else if err := t.NewFileDiscovered(path); err != nil {
			continue
		}

		added = append(added, path)
	}

	t.primed = true

	for path := range t.files {
		if _, ok := present[path]; !ok {
			delete(t.files, path)
			t.logger.Debug().Str(logFieldPath, path).Msg("stopped tracking chat log")
		}
	}

	observability.FilesTracked.Set(float64(len(t.files)))

	return added, nil
}

// trackFromStart tracks a file created after start-up with a zero baseline.
func (t *Tracker) trackFromStart(path string) error {
	st, err := t.newState(path)
	if err != nil {
		return err
	}

	t.files[path] = st

	t.logger.Debug().
		Str(logFieldPath, path).
		Str(logFieldRoom, st.Room).
		Msg("tracking new chat log from the start")

	return nil
}

// NewFileDiscovered starts tracking path. Everything already in the file is
// treated as consumed; for local chat the listener and session are read from
// the header.
func (t *Tracker) NewFileDiscovered(path string) error {
	if t.IsIgnored(path) {
		return fmt.Errorf("%s: %w", path, errors.ErrFileIgnored)
	}

	st, err := t.newState(path)
	if err != nil {
		return err
	}

	lines, err := readLines(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.ignore(path, err)
		}

		return err
	}

	if st.Local {
		st.extractIdentity(lines)
	}

	st.Lines = len(lines)
	t.files[path] = st

	t.logger.Debug().
		Str(logFieldPath, path).
		Str(logFieldRoom, st.Room).
		Int(logFieldLines, st.Lines).
		Msg("tracking chat log")

	return nil
}

// FileAppended reads the lines added to path since the last read and returns
// the messages they produce in file order. A path that is not tracked yet is
// a file created after start-up: all of its lines are new.
func (t *Tracker) FileAppended(path string) ([]*domain.Message, error) {
	if t.IsIgnored(path) {
		return nil, nil
	}

	st, ok := t.files[path]
	if !ok {
		var err error

		st, err = t.newState(path)
		if err != nil {
			return nil, nil
		}

		t.files[path] = st
		observability.FilesTracked.Set(float64(len(t.files)))
	}

	lines, err := readLines(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			delete(t.files, path)
			return nil, nil
		}

		t.ignore(path, err)

		return nil, nil
	}

	if len(lines) < st.Lines {
		// Rewritten in place; nothing we can tell apart from old content.
		st.Lines = len(lines)
		return nil, nil
	}

	if st.Local && !st.HasIdentity() {
		st.extractIdentity(lines)
	}

	fresh := lines[st.Lines:]
	st.Lines = len(lines)

	if len(fresh) == 0 {
		return nil, nil
	}

	observability.LinesRead.WithLabelValues(st.Room).Add(float64(len(fresh)))

	return t.parse(st, fresh), nil
}

func (t *Tracker) parse(st *FileState, lines []string) []*domain.Message {
	var out []*domain.Message

	if st.Local && !st.HasIdentity() {
		t.logger.Warn().Str(logFieldPath, st.Path).Msg("local chat without listener, lines skipped")
		return nil
	}

	for _, l := range lines {
		l = strings.TrimSpace(l)
		if len(l) < minLineLength {
			continue
		}

		var (
			msg *domain.Message
			ok  bool
		)

		if st.Local {
			msg, ok = t.parser.ParseLocal(st.Charname, l)
		} else {
			msg, ok = t.parser.ParseLine(st.Room, l)
		}

		if ok {
			out = append(out, msg)
		}
	}

	return out
}

func (t *Tracker) newState(path string) (*FileState, error) {
	room, ok := RoomName(path)
	if !ok {
		return nil, fmt.Errorf("%s: not a chat log: %w", path, errors.ErrInvalidInput)
	}

	return &FileState{
		Path:  path,
		Room:  room,
		Local: t.parser.IsLocalRoom(room),
	}, nil
}

func (t *Tracker) ignore(path string, cause error) {
	t.ignored[path] = struct{}{}
	delete(t.files, path)

	observability.FilesIgnored.Inc()

	fe := &FileError{Path: path, Err: cause}
	t.logger.Warn().Err(cause).Str(logFieldPath, path).Msg("ignoring chat log")

	if t.onFileError != nil {
		t.onFileError(fe)
	}
}

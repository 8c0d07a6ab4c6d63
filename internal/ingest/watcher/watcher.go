// Package watcher turns chat-log directory activity into wake-up events.
//
// Directory notifications come from fsnotify. Some platforms buffer writes
// to open files and only report them late, so file sizes are also polled on
// a short interval. The watcher never reads file contents; the consumer
// hands each event to the log tracker.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/platform/worker"
)

const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxAge       = 24 * time.Hour

	logExt = ".txt"

	logFieldPath = "path"
)

// EventKind tells the consumer what to do with an event.
type EventKind int

const (
	// DirChanged asks for a directory re-list.
	DirChanged EventKind = iota
	// FileChanged asks for the new lines of Path.
	FileChanged
)

func (k EventKind) String() string {
	if k == FileChanged {
		return "file_changed"
	}

	return "dir_changed"
}

// Event is one wake-up.
type Event struct {
	Kind EventKind
	Path string
}

// Config holds the tunables of a Watcher.
type Config struct {
	PollInterval time.Duration
	MaxAge       time.Duration
}

// Watcher emits events for one directory.
type Watcher struct {
	dir    string
	cfg    Config
	sizes  map[string]int64
	logger *zerolog.Logger
}

// New creates a watcher for dir.
func New(dir string, cfg Config, logger *zerolog.Logger) *Watcher {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}

	return &Watcher{
		dir:    dir,
		cfg:    cfg,
		sizes:  make(map[string]int64),
		logger: logger,
	}
}

// Run sends events to out until ctx is canceled. The channel is not closed.
func (w *Watcher) Run(ctx context.Context, out chan<- Event) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}

	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	go w.forward(ctx, fw, out)

	// Prime the size table so the first poll does not report every file.
	w.poll(ctx, nil)

	return worker.TickerLoop(ctx, worker.TickerConfig{
		Name:     "log-watcher",
		Interval: w.cfg.PollInterval,
		OnTick: func(ctx context.Context) {
			w.poll(ctx, out)
		},
		Logger: w.logger,
	})
}

func (w *Watcher) forward(ctx context.Context, fw *fsnotify.Watcher, out chan<- Event) {
	defer worker.RecoverPanic(w.logger, "fs watcher")

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}

			if e, ok := translate(ev); ok {
				send(ctx, out, e)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}

			w.logger.Warn().Err(err).Msg("fs watcher error")
		}
	}
}

func translate(ev fsnotify.Event) (Event, bool) {
	if !strings.EqualFold(filepath.Ext(ev.Name), logExt) {
		return Event{}, false
	}

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0:
		return Event{Kind: DirChanged, Path: ev.Name}, true
	case ev.Op&fsnotify.Write != 0:
		return Event{Kind: FileChanged, Path: ev.Name}, true
	default:
		return Event{}, false
	}
}

// poll compares file sizes with the previous poll. A nil out only refreshes
// the table.
func (w *Watcher) poll(ctx context.Context, out chan<- Event) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn().Err(err).Str(logFieldPath, w.dir).Msg("poll chat log directory")
		if out != nil {
			send(ctx, out, Event{Kind: DirChanged})
		}

		return
	}

	cutoff := time.Now().Add(-w.cfg.MaxAge)
	seen := make(map[string]struct{}, len(entries))
	dirChanged := false

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), logExt) {
			continue
		}

		info, err := e.Info()
		if err != nil || info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(w.dir, e.Name())
		seen[path] = struct{}{}

		prev, known := w.sizes[path]
		w.sizes[path] = info.Size()

		switch {
		case !known:
			dirChanged = true
		case prev != info.Size() && out != nil:
			send(ctx, out, Event{Kind: FileChanged, Path: path})
		}
	}

	for path := range w.sizes {
		if _, ok := seen[path]; !ok {
			delete(w.sizes, path)
			dirChanged = true
		}
	}

	if dirChanged && out != nil {
		send(ctx, out, Event{Kind: DirChanged})
	}
}

func send(ctx context.Context, out chan<- Event, e Event) {
	select {
	case out <- e:
	case <-ctx.Done():
	}
}

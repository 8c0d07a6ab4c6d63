package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/core/domain"
	"github.com/lueurxax/intel-watch/internal/core/errors"
	"github.com/lueurxax/intel-watch/internal/ingest/logtracker"
	"github.com/lueurxax/intel-watch/internal/ingest/watcher"
	"github.com/lueurxax/intel-watch/internal/output/feed"
	"github.com/lueurxax/intel-watch/internal/platform/observability"
	"github.com/lueurxax/intel-watch/internal/process/chatparser"
	"github.com/lueurxax/intel-watch/internal/process/intel"
	"github.com/lueurxax/intel-watch/internal/process/kos"
)

const (
	logFieldPath   = "path"
	logFieldRoom   = "room"
	logFieldSystem = "system"
	logFieldCount  = "count"
	logFieldStatus = "status"
)

// kosSubmitter is satisfied by *kos.Queue.
type kosSubmitter interface {
	Submit(req kos.Request) error
}

// engine owns the parsing state. Every method must be called from the same
// goroutine.
type engine struct {
	parser  *chatparser.Parser
	tracker *logtracker.Tracker
	board   *intel.Board
	feed    *feed.Writer
	kos     kosSubmitter
	ttl     time.Duration
	now     func() time.Time
	logger  *zerolog.Logger
}

// handleEvent reacts to one watcher wake-up. Only a vanished log directory
// is returned as an error.
func (e *engine) handleEvent(ev watcher.Event) error {
	switch ev.Kind {
	case watcher.DirChanged:
		added, err := e.tracker.DirectoryChanged()
		if err != nil {
			return err
		}

		for _, p := range added {
			e.logger.Info().Str(logFieldPath, p).Msg("tracking chat log")
			e.readFile(p)
		}
	case watcher.FileChanged:
		e.readFile(ev.Path)
	}

	return nil
}

func (e *engine) readFile(path string) {
	msgs, err := e.tracker.FileAppended(path)
	if err != nil {
		e.logger.Warn().Err(err).Str(logFieldPath, path).Msg("read chat log")
		return
	}

	e.handleMessages(msgs)
}

func (e *engine) handleMessages(msgs []*domain.Message) {
	for _, m := range msgs {
		e.handleMessage(m)
	}
}

func (e *engine) handleMessage(m *domain.Message) {
	observability.MessagesClassified.WithLabelValues(string(m.Status)).Inc()

	if m.LocationSystem != "" {
		observability.LocationsKnown.Set(float64(len(e.parser.Locations().All())))
		e.write(e.feed.Location(m))

		return
	}

	e.write(e.feed.Message(m))

	switch m.Status {
	case domain.StatusKOSRequest:
		e.requestKOS(m)
	case domain.StatusIgnore:
	default:
		e.updateBoard(m)
	}
}

// updateBoard applies an intel message to the status board. Game notices
// posted as "EVE System" never change a system's status.
func (e *engine) updateBoard(m *domain.Message) {
	if m.User == domain.EVESystemUser || m.User == domain.EVESystemUserHyphenated {
		return
	}

	now := e.now()

	for _, s := range m.Systems {
		if e.board.SetStatus(s.Name, m.Status, m.Timestamp) {
			e.logger.Debug().Str(logFieldSystem, s.Name).Str(logFieldStatus, string(m.Status)).Msg("system status changed")
			e.write(e.feed.Status(e.board, s.Name, now))
		}
	}
}

// requestKOS queues a check for a KOS request. Requests posted in monitored
// intel rooms are not honored.
func (e *engine) requestKOS(m *domain.Message) {
	if e.kos == nil {
		return
	}

	if e.parser.IsMonitored(m.Room) {
		e.logger.Debug().Str(logFieldRoom, m.Room).Msg("kos request in intel room ignored")
		return
	}

	err := e.kos.Submit(kos.Request{
		Names:   kos.ParseRequest(m.RawText),
		Source:  m.Room,
		OnlyKOS: false,
		At:      m.Timestamp,
	})

	switch {
	case err == nil:
	case errors.Is(err, errors.ErrDuplicateRequest), errors.Is(err, errors.ErrNoNames):
		e.logger.Debug().Err(err).Str(logFieldRoom, m.Room).Msg("kos request dropped")
	default:
		e.logger.Warn().Err(err).Str(logFieldRoom, m.Room).Msg("kos request dropped")
	}
}

// prune drops messages older than the TTL from systems and from the known
// message store.
func (e *engine) prune() {
	now := e.now()

	removed := intel.PruneExpired(e.parser.Gazetteer().Systems(), now, e.ttl)
	removed += e.parser.Known().Prune(now.Add(-e.ttl))

	if removed > 0 {
		observability.MessagesPruned.Add(float64(removed))
		e.logger.Debug().Int(logFieldCount, removed).Msg("pruned expired messages")
	}
}

func (e *engine) fileError(fe *logtracker.FileError) {
	e.write(e.feed.FileError(fe.Path, fe.Err))
}

func (e *engine) write(err error) {
	if err != nil {
		e.logger.Error().Err(err).Msg("write feed event")
	}
}

// run consumes watcher events and prunes state on every tick until ctx is
// canceled or the watcher stops.
func (e *engine) run(ctx context.Context, events <-chan watcher.Event, watchErr <-chan error, pruneEvery time.Duration) error {
	ticker := time.NewTicker(pruneEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watchErr:
			return err
		case ev := <-events:
			if err := e.handleEvent(ev); err != nil {
				return err
			}
		case <-ticker.C:
			e.prune()
		}
	}
}

// Package app wires the chat-log pipeline and exposes the run modes:
//
//   - Watch: tail the chat-log directory and stream events until stopped
//   - Replay: classify whole log files once and print the events
//   - KOS: run one KOS check and print the summary
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/core/errors"
	"github.com/lueurxax/intel-watch/internal/core/gazetteer"
	"github.com/lueurxax/intel-watch/internal/ingest/logtracker"
	"github.com/lueurxax/intel-watch/internal/ingest/watcher"
	"github.com/lueurxax/intel-watch/internal/output/feed"
	"github.com/lueurxax/intel-watch/internal/platform/config"
	"github.com/lueurxax/intel-watch/internal/platform/observability"
	"github.com/lueurxax/intel-watch/internal/platform/worker"
	"github.com/lueurxax/intel-watch/internal/process/chatparser"
	"github.com/lueurxax/intel-watch/internal/process/intel"
	"github.com/lueurxax/intel-watch/internal/process/kos"
	db "github.com/lueurxax/intel-watch/internal/storage"
)

const (
	pruneInterval      = time.Minute
	cachePruneInterval = time.Hour
	watchEventsBuffer  = 64
	msgKOSQueueStopped = "kos queue stopped"
)

// App holds the configuration and shared dependencies of every mode.
type App struct {
	cfg    *config.Config
	out    io.Writer
	logger *zerolog.Logger
	now    func() time.Time
}

// New creates an App that writes its events to out.
func New(cfg *config.Config, out io.Writer, logger *zerolog.Logger) *App {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &App{
		cfg:    cfg,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// RunWatch tails LOG_DIR until ctx is canceled or the directory disappears.
func (a *App) RunWatch(ctx context.Context) error {
	if err := a.cfg.RequireLogDir(); err != nil {
		return err
	}

	a.logger.Info().Str(logFieldPath, a.cfg.LogDir).Msg("Starting watch mode")

	database, err := db.Open(ctx, a.cfg.CachePath, a.logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	defer func() { _ = database.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e, err := a.newEngine(a.cfg.LogDir)
	if err != nil {
		return err
	}

	if a.cfg.KOSEnabled {
		q := kos.NewQueue(a.newChecker(database), kos.QueueConfig{
			Size:     a.cfg.KOSQueueSize,
			Debounce: a.cfg.KOSDebounce,
			Timeout:  a.cfg.KOSTimeout,
		}, a.logger)
		e.kos = q

		go a.runKOSQueue(ctx, q, e.feed)
	}

	if a.cfg.HealthPort > 0 {
		go a.runHealthServer(ctx, database)
	}

	go a.runCachePrune(ctx, database)

	if _, err := e.tracker.DirectoryChanged(); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}

	events := make(chan watcher.Event, watchEventsBuffer)
	watchErr := make(chan error, 1)

	w := watcher.New(a.cfg.LogDir, watcher.Config{
		PollInterval: a.cfg.PollInterval,
		MaxAge:       a.cfg.FileRetention,
	}, a.logger)

	go func() {
		watchErr <- w.Run(ctx, events)
	}()

	err = e.run(ctx, events, watchErr, pruneInterval)
	if errors.Is(err, context.Canceled) {
		a.logger.Info().Msg("watch stopped")
	}

	return err
}

// RunReplay classifies every line of the given files, in order, as if each
// file had just been created, and writes the events.
func (a *App) RunReplay(_ context.Context, paths []string) error {
	e, err := a.newEngine(a.cfg.LogDir)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if _, ok := logtracker.RoomName(p); !ok {
			return fmt.Errorf("replay %s: not a chat log: %w", p, errors.ErrInvalidInput)
		}

		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("replay: %w", err)
		}

		msgs, err := e.tracker.FileAppended(p)
		if err != nil {
			return fmt.Errorf("replay %s: %w", p, err)
		}

		e.handleMessages(msgs)
	}

	return nil
}

// RunKOS checks names once and writes the summary as plain text.
func (a *App) RunKOS(ctx context.Context, names []string) error {
	if !a.cfg.KOSEnabled {
		return fmt.Errorf("kos check: %w", errors.ErrClientDisabled)
	}

	database, err := db.Open(ctx, a.cfg.CachePath, a.logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	defer func() { _ = database.Close() }()

	res, err := a.newChecker(database).Check(kos.WithRequestID(ctx, uuid.New().String()), names)
	if err != nil {
		return fmt.Errorf("kos check: %w", err)
	}

	if _, err := fmt.Fprintln(a.out, kos.Summary(res, false)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func (a *App) newEngine(dir string) (*engine, error) {
	g, err := a.loadGazetteer()
	if err != nil {
		return nil, err
	}

	parser := chatparser.New(g, intel.NewLocations(), chatparser.Config{
		Rooms:         a.cfg.IntelRooms,
		LocalRooms:    a.cfg.LocalRooms,
		LookbackDepth: a.cfg.ClearLookbackDepth,
	}, a.logger)

	e := &engine{
		parser: parser,
		board:  intel.NewBoard(),
		feed:   feed.NewWriter(a.out),
		ttl:    a.cfg.MessageTTL,
		now:    a.now,
		logger: a.logger,
	}

	e.tracker = logtracker.New(dir, parser, logtracker.Config{
		Retention:   a.cfg.FileRetention,
		OnFileError: e.fileError,
		Now:         a.now,
	}, a.logger)

	return e, nil
}

func (a *App) loadGazetteer() (*gazetteer.Gazetteer, error) {
	if a.cfg.RegionFile == "" {
		a.logger.Warn().Msg("no region file configured, system names will not be tagged")
		return gazetteer.New(gazetteer.DefaultShips(), nil), nil
	}

	g, region, err := gazetteer.LoadRegion(a.cfg.RegionFile)
	if err != nil {
		return nil, fmt.Errorf("load region: %w", err)
	}

	a.logger.Info().
		Str("region", region.Name).
		Int(logFieldCount, len(region.Systems)).
		Msg("region loaded")

	return g, nil
}

func (a *App) newChecker(cache kos.Cache) *kos.Checker {
	roster := kos.NewRosterClient(kos.RosterConfig{
		BaseURL: a.cfg.KOSRosterURL,
		RPS:     a.cfg.KOSRPS,
		Timeout: a.cfg.KOSTimeout,
	})

	identity := kos.NewIdentityClient(kos.IdentityConfig{
		BaseURL: a.cfg.KOSIdentityURL,
		RPS:     a.cfg.KOSRPS,
		Timeout: a.cfg.KOSTimeout,
		Cache:   cache,
	})

	return kos.NewChecker(roster, identity, a.logger)
}

func (a *App) runKOSQueue(ctx context.Context, q *kos.Queue, w *feed.Writer) {
	err := q.Run(ctx, func(o kos.Outcome) {
		if err := w.KOSOutcome(o); err != nil {
			a.logger.Error().Err(err).Msg("write kos outcome")
		}
	})
	if errors.Is(err, context.Canceled) {
		a.logger.Info().Msg(msgKOSQueueStopped)
		return
	}

	a.logger.Warn().Err(err).Msg(msgKOSQueueStopped)
}

func (a *App) runHealthServer(ctx context.Context, database *db.DB) {
	srv := observability.NewServer(database, a.cfg.HealthPort, a.logger)
	if err := srv.Start(ctx); err != nil {
		a.logger.Error().Err(err).Msg("health server error")
	}
}

// runCachePrune drops expired identity cache rows at start-up and then
// every hour.
func (a *App) runCachePrune(ctx context.Context, database *db.DB) {
	_ = worker.TickerLoop(ctx, worker.TickerConfig{
		Name:       "cache-prune",
		Interval:   cachePruneInterval,
		RunOnStart: true,
		Logger:     a.logger,
		OnTick: func(ctx context.Context) {
			n, err := database.PruneCache(ctx)
			if err != nil {
				a.logger.Warn().Err(err).Msg("prune cache")
				return
			}

			if n > 0 {
				a.logger.Debug().Int64(logFieldCount, n).Msg("pruned cache entries")
			}
		},
	})
}

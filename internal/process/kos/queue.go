package kos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/core/errors"
	"github.com/lueurxax/intel-watch/internal/platform/worker"
)

const defaultQueueSize = 16

// Request is one queued KOS check.
type Request struct {
	ID      string
	Names   []string
	Source  string
	OnlyKOS bool
	At      time.Time
}

// Outcome is the result of a queued check. Err is set when the roster
// could not be asked; Result is then nil.
type Outcome struct {
	Request Request
	Result  Result
	Text    string
	Hostile bool
	Err     error
}

// QueueConfig holds the tunables of a Queue.
type QueueConfig struct {
	Size     int
	Debounce time.Duration
	Timeout  time.Duration
}

// Queue runs checks off the caller's goroutine. Submit is safe for
// concurrent use; Run must be called once.
type Queue struct {
	checker  *Checker
	requests chan Request
	timeout  time.Duration
	logger   *zerolog.Logger

	mu        sync.Mutex
	debouncer *Debouncer
}

// NewQueue creates a queue in front of checker.
func NewQueue(checker *Checker, cfg QueueConfig, logger *zerolog.Logger) *Queue {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if cfg.Size <= 0 {
		cfg.Size = defaultQueueSize
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	return &Queue{
		checker:   checker,
		requests:  make(chan Request, cfg.Size),
		timeout:   cfg.Timeout,
		logger:    logger,
		debouncer: NewDebouncer(cfg.Debounce),
	}
}

// Submit enqueues a check. It returns errors.ErrDuplicateRequest when the
// same names were requested within the debounce window, errors.ErrNoNames
// for an empty request and errors.ErrQueueFull when the queue is full.
func (q *Queue) Submit(req Request) error {
	req.Names = cleanNames(req.Names)
	if len(req.Names) == 0 {
		return errors.ErrNoNames
	}

	if req.At.IsZero() {
		req.At = time.Now()
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	q.mu.Lock()
	allowed := q.debouncer.Allow(req.Names, req.At)
	q.mu.Unlock()

	if !allowed {
		return errors.ErrDuplicateRequest
	}

	select {
	case q.requests <- req:
		return nil
	default:
		return fmt.Errorf("kos queue: %w", errors.ErrQueueFull)
	}
}

// Run processes requests until ctx is canceled, passing each outcome to
// emit.
func (q *Queue) Run(ctx context.Context, emit func(Outcome)) error {
	q.logger.Info().Msg("starting kos queue")

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("kos queue: %w", ctx.Err())
		case req := <-q.requests:
			emit(q.process(ctx, req))
		}
	}
}

func (q *Queue) process(ctx context.Context, req Request) Outcome {
	defer worker.RecoverPanic(q.logger, "kos check")

	out := Outcome{Request: req}

	err := worker.RunWithTimeout(WithRequestID(ctx, req.ID), q.timeout, func(ctx context.Context) error {
		res, err := q.checker.Check(ctx, req.Names)
		if err != nil {
			return err
		}

		out.Result = res

		return nil
	})
	if err != nil {
		out.Err = err
		return out
	}

	out.Text = Summary(out.Result, req.OnlyKOS)
	out.Hostile = out.Result.HasHostile()

	return out
}

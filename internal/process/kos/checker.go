package kos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lueurxax/intel-watch/internal/core/errors"
	"github.com/lueurxax/intel-watch/internal/platform/observability"
)

const (
	logFieldRequestID = "request_id"
	logFieldNames     = "names"
	logFieldCorp      = "corp"

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Roster answers KOS questions. *RosterClient implements it.
type Roster interface {
	LookupPilots(ctx context.Context, names []string) ([]PilotEntry, error)
	UnitKOS(ctx context.Context, unit string) (bool, error)
}

// Identity resolves characters and their employment history.
// *IdentityClient implements it.
type Identity interface {
	NamesToIDs(ctx context.Context, names []string) (map[string]int64, error)
	CorporationHistory(ctx context.Context, charID int64) ([]int64, error)
	IDsToNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id used on every outgoing request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// Checker runs KOS checks.
type Checker struct {
	roster   Roster
	identity Identity
	logger   *zerolog.Logger
}

// NewChecker creates a checker. identity may be nil, in which case
// characters that need a history check end up unknown.
func NewChecker(roster Roster, identity Identity, logger *zerolog.Logger) *Checker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Checker{roster: roster, identity: identity, logger: logger}
}

// Check returns a verdict for every name. A failing roster lookup is an
// error wrapping errors.ErrRosterUnavailable, never an empty result.
func (c *Checker) Check(ctx context.Context, names []string) (Result, error) {
	names = cleanNames(names)
	if len(names) == 0 {
		return nil, errors.ErrNoNames
	}

	if _, ok := ctx.Value(requestIDKey{}).(string); !ok {
		ctx = WithRequestID(ctx, uuid.New().String())
	}

	logger := c.logger.With().Str(logFieldRequestID, requestID(ctx)).Logger()
	start := time.Now()

	defer func() {
		observability.KOSCheckDuration.Observe(time.Since(start).Seconds())
	}()

	entries, err := c.roster.LookupPilots(ctx, names)
	if err != nil {
		observability.KOSChecks.WithLabelValues(outcomeError).Inc()
		logger.Warn().Err(err).Strs(logFieldNames, names).Msg("kos roster lookup failed")

		return nil, fmt.Errorf("%w: %w", errors.ErrRosterUnavailable, err)
	}

	result := make(Result, len(names))
	requested := make(map[string]string, len(names))

	for _, n := range names {
		requested[strings.ToLower(n)] = n
	}

	for _, e := range entries {
		name, ok := requested[strings.ToLower(e.Name)]
		if !ok {
			continue
		}

		switch {
		case e.Flagged():
			result[name] = VerdictKOS
		case !IsNPCCorp(e.Corp):
			result[name] = VerdictNotKOS
		}
	}

	var byHistory []string

	for _, n := range names {
		if _, ok := result[n]; !ok {
			byHistory = append(byHistory, n)
		}
	}

	for name, v := range c.checkByLastCorp(ctx, &logger, byHistory) {
		result[name] = v
	}

	observability.KOSChecks.WithLabelValues(outcomeOK).Inc()

	return result, nil
}

// checkByLastCorp judges characters by the last player corporation they
// belonged to. Identity failures leave the character unknown.
func (c *Checker) checkByLastCorp(ctx context.Context, logger *zerolog.Logger, names []string) Result {
	out := make(Result, len(names))
	for _, n := range names {
		out[n] = VerdictUnknown
	}

	if len(names) == 0 || c.identity == nil {
		return out
	}

	ids, err := c.identity.NamesToIDs(ctx, names)
	if err != nil {
		logger.Warn().Err(err).Msg("resolve character ids")
		return out
	}

	histories := make(map[string][]int64, len(ids))
	corpIDs := make(map[int64]struct{})

	for name, id := range ids {
		hist, err := c.identity.CorporationHistory(ctx, id)
		if err != nil {
			logger.Warn().Err(err).Int64("character_id", id).Msg("load corporation history")
			continue
		}

		histories[name] = hist

		for _, cid := range hist {
			corpIDs[cid] = struct{}{}
		}
	}

	if len(corpIDs) == 0 {
		return out
	}

	idList := make([]int64, 0, len(corpIDs))
	for id := range corpIDs {
		idList = append(idList, id)
	}

	corpNames, err := c.identity.IDsToNames(ctx, idList)
	if err != nil {
		logger.Warn().Err(err).Msg("resolve corporation names")
		return out
	}

	unitCache := make(map[string]bool)

	for name, hist := range histories {
		corp := lastPlayerCorp(hist, corpNames)
		if corp == "" {
			continue
		}

		flagged, seen := unitCache[corp]
		if !seen {
			flagged, err = c.roster.UnitKOS(ctx, corp)
			if err != nil {
				logger.Warn().Err(err).Str(logFieldCorp, corp).Msg("corporation kos lookup")
				continue
			}

			unitCache[corp] = flagged
		}

		if flagged {
			out[lookupKey(out, name)] = VerdictRedByLast
		}
	}

	return out
}

// lookupKey maps a name returned by the identity service back to the
// requested spelling.
func lookupKey(r Result, name string) string {
	if _, ok := r[name]; ok {
		return name
	}

	for k := range r {
		if strings.EqualFold(k, name) {
			return k
		}
	}

	return name
}

func lastPlayerCorp(history []int64, names map[int64]string) string {
	for _, id := range history {
		name, ok := names[id]
		if ok && name != "" && !IsNPCCorp(name) {
			return name
		}
	}

	return ""
}

func cleanNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}

		if _, dup := seen[n]; dup {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}

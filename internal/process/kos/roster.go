package kos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lueurxax/intel-watch/internal/core/errors"
)

const (
	DefaultRosterURL = "http://kos.cva-eve.org/api/"

	defaultHTTPTimeout = 20 * time.Second
	defaultRPS         = 2.0

	rosterTypeMulti = "multi"
	rosterTypeUnit  = "unit"
	rosterFormat    = "json"

	httpHeaderAccept    = "Accept"
	httpHeaderRequestID = "X-Request-ID"
	httpContentTypeJSON = "application/json"
)

// PilotEntry is the roster record of one character.
type PilotEntry struct {
	Name        string
	KOS         bool
	Corp        string
	CorpKOS     bool
	Alliance    string
	AllianceKOS bool
}

// Flagged reports whether the character, corporation or alliance is KOS.
func (p PilotEntry) Flagged() bool {
	return p.KOS || p.CorpKOS || p.AllianceKOS
}

type rosterResponse struct {
	Results []rosterResult `json:"results"`
}

type rosterResult struct {
	Label    string       `json:"label"`
	KOS      bool         `json:"kos"`
	Corp     *rosterUnit  `json:"corp"`
	Alliance *rosterLabel `json:"alliance"`
}

type rosterUnit struct {
	Label    string       `json:"label"`
	KOS      bool         `json:"kos"`
	Alliance *rosterLabel `json:"alliance"`
}

type rosterLabel struct {
	Label string `json:"label"`
	KOS   bool   `json:"kos"`
}

// RosterConfig holds configuration for the roster client.
type RosterConfig struct {
	BaseURL string
	RPS     float64
	Timeout time.Duration
}

// RosterClient queries the KOS roster over HTTP.
type RosterClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewRosterClient creates a roster client.
func NewRosterClient(cfg RosterConfig) *RosterClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultRosterURL
	}

	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	return &RosterClient{
		baseURL:     cfg.BaseURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
	}
}

// LookupPilots asks the roster about all names in one request.
func (c *RosterClient) LookupPilots(ctx context.Context, names []string) ([]PilotEntry, error) {
	var resp rosterResponse
	if err := c.query(ctx, rosterTypeMulti, strings.Join(names, ","), &resp); err != nil {
		return nil, err
	}

	out := make([]PilotEntry, 0, len(resp.Results))

	for _, r := range resp.Results {
		e := PilotEntry{Name: r.Label, KOS: r.KOS}

		if r.Corp != nil {
			e.Corp = r.Corp.Label
			e.CorpKOS = r.Corp.KOS

			if r.Corp.Alliance != nil {
				e.Alliance = r.Corp.Alliance.Label
				e.AllianceKOS = r.Corp.Alliance.KOS
			}
		}

		out = append(out, e)
	}

	return out, nil
}

// UnitKOS reports whether a corporation, or its alliance, is KOS.
func (c *RosterClient) UnitKOS(ctx context.Context, unit string) (bool, error) {
	var resp rosterResponse
	if err := c.query(ctx, rosterTypeUnit, unit, &resp); err != nil {
		return false, err
	}

	for _, r := range resp.Results {
		if r.KOS || (r.Alliance != nil && r.Alliance.KOS) {
			return true, nil
		}
	}

	return false, nil
}

func (c *RosterClient) query(ctx context.Context, kind, q string, into *rosterResponse) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("roster rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("c", rosterFormat)
	params.Set("type", kind)
	params.Set("q", q)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse roster url: %w", err)
	}

	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create roster request: %w", err)
	}

	req.Header.Set(httpHeaderAccept, httpContentTypeJSON)
	req.Header.Set(httpHeaderRequestID, requestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("roster request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("roster: %w: %d", errors.ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode roster response: %w", err)
	}

	return nil
}

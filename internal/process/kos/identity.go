package kos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lueurxax/intel-watch/internal/core/errors"
	"github.com/lueurxax/intel-watch/internal/platform/observability"
)

const (
	DefaultIdentityURL = "https://esi.evetech.net/latest"

	// Names and ids of characters and corporations never change.
	identityCacheTTL = 365 * 24 * time.Hour

	idsPath     = "/universe/ids/"
	namesPath   = "/universe/names/"
	historyPath = "/characters/%d/corporationhistory/"

	cacheKeyNameToID = "id_name_"
	cacheKeyIDToName = "name_id_"

	cacheResultHit  = "hit"
	cacheResultMiss = "miss"
)

// Cache stores identity lookups. *db.DB implements it.
type Cache interface {
	GetCache(ctx context.Context, key string) (string, error)
	PutCache(ctx context.Context, key, data string, maxAge time.Duration) error
}

// IdentityConfig holds configuration for the identity client.
type IdentityConfig struct {
	BaseURL string
	RPS     float64
	Timeout time.Duration
	Cache   Cache
}

// IdentityClient resolves character and corporation identities through an
// ESI-style API, caching name/id pairs.
type IdentityClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	cache       Cache
}

type idsResponse struct {
	Characters []idName `json:"characters"`
}

type idName struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type historyRecord struct {
	CorporationID int64  `json:"corporation_id"`
	RecordID      int64  `json:"record_id"`
	StartDate     string `json:"start_date"`
}

// NewIdentityClient creates an identity client. Cache may be nil.
func NewIdentityClient(cfg IdentityConfig) *IdentityClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultIdentityURL
	}

	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	return &IdentityClient{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		cache:       cfg.Cache,
	}
}

// NamesToIDs resolves character names. The result is keyed by the requested
// spelling and unknown names are absent from it.
func (c *IdentityClient) NamesToIDs(ctx context.Context, names []string) (map[string]int64, error) {
	out := make(map[string]int64, len(names))

	var missing []string

	for _, n := range names {
		if v, ok := c.cached(ctx, cacheKeyNameToID+n); ok {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				out[n] = id
				continue
			}
		}

		missing = append(missing, n)
	}

	if len(missing) == 0 {
		return out, nil
	}

	var resp idsResponse
	if err := c.do(ctx, http.MethodPost, idsPath, missing, &resp); err != nil {
		return nil, err
	}

	for _, ch := range resp.Characters {
		if ch.ID == 0 {
			continue
		}

		id := strconv.FormatInt(ch.ID, 10)
		requested := requestedSpelling(missing, ch.Name)

		out[requested] = ch.ID
		c.store(ctx, cacheKeyNameToID+ch.Name, id)

		if requested != ch.Name {
			c.store(ctx, cacheKeyNameToID+requested, id)
		}
	}

	return out, nil
}

// requestedSpelling returns the entry of names matching name without regard
// to case, or name itself when none does.
func requestedSpelling(names []string, name string) string {
	for _, n := range names {
		if n == name {
			return n
		}
	}

	for _, n := range names {
		if strings.EqualFold(n, name) {
			return n
		}
	}

	return name
}

// CorporationHistory returns the corporation ids of a character, most
// recent first.
func (c *IdentityClient) CorporationHistory(ctx context.Context, charID int64) ([]int64, error) {
	var records []historyRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(historyPath, charID), nil, &records); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordID > records[j].RecordID
	})

	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.CorporationID)
	}

	return out, nil
}

// IDsToNames resolves ids to names.
func (c *IdentityClient) IDsToNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))

	var missing []int64

	for _, id := range ids {
		if v, ok := c.cached(ctx, cacheKeyIDToName+strconv.FormatInt(id, 10)); ok {
			out[id] = v
			continue
		}

		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	var resp []idName
	if err := c.do(ctx, http.MethodPost, namesPath, missing, &resp); err != nil {
		return nil, err
	}

	for _, r := range resp {
		out[r.ID] = r.Name
		c.store(ctx, cacheKeyIDToName+strconv.FormatInt(r.ID, 10), r.Name)
	}

	return out, nil
}

func (c *IdentityClient) cached(ctx context.Context, key string) (string, bool) {
	if c.cache == nil {
		return "", false
	}

	v, err := c.cache.GetCache(ctx, key)
	if err != nil {
		observability.CacheLookups.WithLabelValues(cacheResultMiss).Inc()
		return "", false
	}

	observability.CacheLookups.WithLabelValues(cacheResultHit).Inc()

	return v, true
}

func (c *IdentityClient) store(ctx context.Context, key, value string) {
	if c.cache == nil {
		return
	}

	// A failed cache write only costs a repeat lookup.
	_ = c.cache.PutCache(ctx, key, value, identityCacheTTL)
}

func (c *IdentityClient) do(ctx context.Context, method, path string, body, into interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("identity rate limit: %w", err)
	}

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode identity request: %w", err)
		}

		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create identity request: %w", err)
	}

	req.Header.Set(httpHeaderAccept, httpContentTypeJSON)
	req.Header.Set(httpHeaderRequestID, requestID(ctx))

	if body != nil {
		req.Header.Set("Content-Type", httpContentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity request: %w: %w", errors.ErrIdentityUnavailable, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity %s: %w: %w: %d", path, errors.ErrIdentityUnavailable, errors.ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode identity response: %w", err)
	}

	return nil
}

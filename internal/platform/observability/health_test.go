package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestServerHandler(t *testing.T) {
	tests := []struct {
		name   string
		pinger Pinger
		path   string
		want   int
	}{
		{name: "healthz", path: "/healthz", want: http.StatusOK},
		{name: "ready without pinger", path: "/readyz", want: http.StatusOK},
		{
			name:   "ready with failing pinger",
			pinger: pingerFunc(func(context.Context) error { return errors.New("closed") }),
			path:   "/readyz",
			want:   http.StatusServiceUnavailable,
		},
		{name: "metrics", path: "/metrics", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(tt.pinger, 0, nil)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)

			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)

			if tt.path == "/metrics" {
				assert.Contains(t, rec.Body.String(), "intel_files_tracked")
			}
		})
	}
}

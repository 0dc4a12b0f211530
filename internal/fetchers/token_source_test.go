package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, exchanges *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*exchanges++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"bearer","expires_in":7200}`, *exchanges)
	}))
}

func TestTokenSource_CachesUntilMargin(t *testing.T) {
	t.Parallel()

	exchanges := 0
	server := newTokenServer(t, &exchanges)
	defer server.Close()

	base := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	now := base
	ts := newTokenSource(server.URL, "uid", "secret", time.Minute)
	ts.now = func() time.Time { return now }

	ctx := context.Background()
	token, err := ts.BearerToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, 1, exchanges)

	// Pin the expiry to the fake clock; the exchange set it from wall time
	ts.token.Expiry = base.Add(2 * time.Hour)

	// Well inside the token lifetime: cached token is reused
	now = base.Add(time.Hour)
	token, err = ts.BearerToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, 1, exchanges)

	// Within the 60s safety margin of expiry: refreshed proactively
	now = base.Add(2*time.Hour - 30*time.Second)
	token, err = ts.BearerToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, 2, exchanges)
}

func TestTokenSource_InvalidateForcesExchange(t *testing.T) {
	t.Parallel()

	exchanges := 0
	server := newTokenServer(t, &exchanges)
	defer server.Close()

	ts := newTokenSource(server.URL, "uid", "secret", time.Minute)

	ctx := context.Background()
	_, err := ts.BearerToken(ctx)
	require.NoError(t, err)

	ts.Invalidate()
	token, err := ts.BearerToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, 2, exchanges)
}

func TestTokenSource_ExchangeFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ts := newTokenSource(server.URL, "uid", "bad-secret", time.Minute)

	_, err := ts.BearerToken(context.Background())
	assert.Error(t, err)
}

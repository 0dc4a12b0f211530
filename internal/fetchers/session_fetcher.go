package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cluster-stats/internal/models"
	"cluster-stats/internal/shared/loggers"
	"cluster-stats/internal/shared/metrics"
	"cluster-stats/internal/shared/svcerrors"

	"github.com/grafana/dskit/backoff"
)

const timeFormatRange = "2006-01-02T15:04:05Z07:00"

// Config holds everything a session fetcher needs. HTTPClient is optional; a
// default client with the request timeout is created when nil.
type Config struct {
	BaseURL      string
	TokenURL     string // defaults to BaseURL + "/oauth/token"
	ClientID     string
	ClientSecret string

	PageSize            int
	RequestTimeout      time.Duration
	TokenRefreshMargin  time.Duration
	MaxRateLimitRetries int
	BackoffConfig       backoff.Config

	HTTPClient *http.Client
}

// FetchResult is one completed fetch: the ordered raw records, the cutoff
// timestamp open sessions are clamped to, and the number of pages requested.
type FetchResult struct {
	Sessions    []*models.RawSession
	FetchCutoff time.Time
	Pages       int
}

//go:generate mockgen -source=session_fetcher.go -destination=./mocks/session_fetcher_mock.go -package=mocks
type SessionFetcher interface {
	// Fetch paginates through the campus locations endpoint for the given
	// date range and returns every raw session record, in page order.
	Fetch(ctx context.Context, campusID int, since, until time.Time) (*FetchResult, error)
}

type sessionFetcher struct {
	baseURL  string
	client   *http.Client
	tokens   *tokenSource
	pageSize int

	maxRateLimitRetries int
	backoffConfig       backoff.Config

	now func() time.Time
}

func NewSessionFetcher(cfg Config) SessionFetcher {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = baseURL + "/oauth/token"
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &sessionFetcher{
		baseURL:             baseURL,
		client:              client,
		tokens:              newTokenSource(tokenURL, cfg.ClientID, cfg.ClientSecret, cfg.TokenRefreshMargin),
		pageSize:            cfg.PageSize,
		maxRateLimitRetries: cfg.MaxRateLimitRetries,
		backoffConfig:       cfg.BackoffConfig,
		now:                 time.Now,
	}
}

func (f *sessionFetcher) Fetch(ctx context.Context, campusID int, since, until time.Time) (*FetchResult, error) {
	result, err := f.fetch(ctx, campusID, since, until)
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricFetchesTotal.WithLabelValues(svcErr.Code).Inc()
		}
		return nil, err
	}
	metricFetchesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return result, nil
}

func (f *sessionFetcher) fetch(ctx context.Context, campusID int, since, until time.Time) (*FetchResult, error) {
	if campusID <= 0 {
		return nil, errInvalidParameters(fmt.Sprintf("campus id must be positive, got %d", campusID))
	}
	if until.Before(since) {
		return nil, errInvalidParameters(fmt.Sprintf("inverted date range: since %s is after until %s",
			since.Format(timeFormatRange), until.Format(timeFormatRange)))
	}

	logger := loggers.Ctx(ctx)
	cutoff := f.now()

	var sessions []*models.RawSession
	pages := 0
	for page := 1; ; page++ {
		elements, err := f.fetchPage(ctx, campusID, since, until, page)
		if err != nil {
			return nil, err
		}
		pages = page

		for i, element := range elements {
			record, convErr := element.toRawSession()
			if convErr != nil {
				logger.Warn().
					Int(loggers.FieldPage, page).
					Msgf("skipping malformed record at index %d: %v", i, convErr)
				metricRecordsSkippedTotal.Inc()
				continue
			}
			sessions = append(sessions, record)
		}
		metricPagesFetchedTotal.Inc()

		// A short or empty page terminates the sequence
		if len(elements) < f.pageSize {
			break
		}
	}

	logger.Info().
		Int(loggers.FieldCampusID, campusID).
		Int(loggers.FieldPage, pages).
		Int(loggers.FieldSessionCount, len(sessions)).
		Msg("fetch completed")

	return &FetchResult{Sessions: sessions, FetchCutoff: cutoff, Pages: pages}, nil
}

// fetchPage requests one page, handling the two per-page retry concerns: an
// auth-expired response triggers exactly one token refresh and retry of the
// same page, and rate-limit responses are retried up to the configured bound
// with the server's advertised delay (or the backoff schedule when absent).
func (f *sessionFetcher) fetchPage(ctx context.Context, campusID int, since, until time.Time, page int) ([]locationElement, error) {
	refreshed := false
	rateLimitRetries := 0
	boff := backoff.New(ctx, f.backoffConfig)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		token, err := f.tokens.BearerToken(ctx)
		if err != nil {
			return nil, errAuthenticationFailed(err)
		}

		elements, status, retryAfter, err := f.doPageRequest(ctx, token, campusID, since, until, page)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, errFetchFailed(page, err)
		}

		switch status {
		case http.StatusOK:
			return elements, nil

		case http.StatusUnauthorized:
			if refreshed {
				return nil, errAuthenticationFailed(fmt.Errorf("page %d: token rejected after refresh", page))
			}
			refreshed = true
			f.tokens.Invalidate()
			loggers.Ctx(ctx).Debug().
				Int(loggers.FieldPage, page).
				Msg("access token expired mid-fetch, refreshing")

		case http.StatusTooManyRequests:
			if rateLimitRetries >= f.maxRateLimitRetries {
				return nil, errRateLimitExceeded(page, rateLimitRetries)
			}
			rateLimitRetries++
			metricRateLimitWaitsTotal.Inc()

			wait := retryAfter
			if wait <= 0 {
				wait = boff.NextDelay()
			}
			loggers.Ctx(ctx).Debug().
				Int(loggers.FieldPage, page).
				Dur(loggers.FieldDuration, wait).
				Msg("rate limited, waiting before retry")
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}

		default:
			return nil, errFetchFailed(page, fmt.Errorf("unexpected status %d", status))
		}
	}
}

func (f *sessionFetcher) doPageRequest(ctx context.Context, token string, campusID int, since, until time.Time, page int) ([]locationElement, int, time.Duration, error) {
	endpoint := fmt.Sprintf("%s/v2/campus/%d/locations", f.baseURL, campusID)

	query := url.Values{}
	query.Set("page[number]", strconv.Itoa(page))
	query.Set("page[size]", strconv.Itoa(f.pageSize))
	query.Set("range[begin_at]", since.UTC().Format(timeFormatRange)+","+until.UTC().Format(timeFormatRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	metricPageRequestDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, parseRetryAfter(resp.Header.Get("Retry-After")), nil
	}

	var elements []locationElement
	if err := json.NewDecoder(resp.Body).Decode(&elements); err != nil {
		return nil, 0, 0, fmt.Errorf("decode page %d: %w", page, err)
	}
	return elements, resp.StatusCode, 0, nil
}

// locationElement is the remote payload shape. Fields the remote may omit are
// pointers; conversion turns a missing required field into a skippable error
// instead of a fetch failure.
type locationElement struct {
	Host    string  `json:"host"`
	BeginAt *string `json:"begin_at"`
	EndAt   *string `json:"end_at"`
	User    struct {
		ID    json.Number `json:"id"`
		Login string      `json:"login"`
	} `json:"user"`
}

func (e locationElement) toRawSession() (*models.RawSession, error) {
	if e.BeginAt == nil || *e.BeginAt == "" {
		return nil, models.ErrMissingBeginAt
	}
	beginAt, err := time.Parse(time.RFC3339, *e.BeginAt)
	if err != nil {
		return nil, fmt.Errorf("invalid begin_at %q: %w", *e.BeginAt, err)
	}

	session := &models.RawSession{
		UserID:    e.User.ID.String(),
		UserLogin: e.User.Login,
		Host:      e.Host,
		BeginAt:   beginAt,
	}

	if e.EndAt != nil && *e.EndAt != "" {
		endAt, err := time.Parse(time.RFC3339, *e.EndAt)
		if err != nil {
			return nil, fmt.Errorf("invalid end_at %q: %w", *e.EndAt, err)
		}
		session.EndAt = &endAt
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}
	return session, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

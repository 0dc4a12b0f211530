package fetchers

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenSource caches one OAuth2 client-credentials token together with its
// expiry. It is owned by a single fetcher instance; there is no process-wide
// token state, so concurrent fetchers stay isolated.
type tokenSource struct {
	conf   *clientcredentials.Config
	margin time.Duration
	now    func() time.Time

	token *oauth2.Token
}

func newTokenSource(tokenURL, clientID, clientSecret string, margin time.Duration) *tokenSource {
	return &tokenSource{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		margin: margin,
		now:    time.Now,
	}
}

// BearerToken returns the cached access token, exchanging client credentials
// when no token is cached or the cached one expires within the safety margin.
func (ts *tokenSource) BearerToken(ctx context.Context) (string, error) {
	if ts.token != nil && ts.token.AccessToken != "" {
		if ts.token.Expiry.IsZero() || ts.now().Add(ts.margin).Before(ts.token.Expiry) {
			return ts.token.AccessToken, nil
		}
	}

	token, err := ts.conf.Token(ctx)
	if err != nil {
		return "", err
	}
	ts.token = token
	metricTokenExchangesTotal.Inc()
	return token.AccessToken, nil
}

// Invalidate drops the cached token so the next BearerToken call performs a
// fresh exchange. Used for the one reactive refresh after an auth-expired
// response.
func (ts *tokenSource) Invalidate() {
	ts.token = nil
}

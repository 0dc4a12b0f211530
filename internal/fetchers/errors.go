package fetchers

import (
	"fmt"

	"cluster-stats/internal/shared/svcerrors"
)

// SessionFetcher errors
const (
	codeInvalidParameters    = "FET_1000"
	codeAuthenticationFailed = "FET_1001"
	codeRateLimitExceeded    = "FET_1002"

	codeFetchFailed = "FET_9000"
)

// errInvalidParameters returns an error for bad campus or date-range inputs,
// surfaced before any network call and never retried.
func errInvalidParameters(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidParameters, msg, nil)
}

// errAuthenticationFailed returns an error when the token exchange or the
// single reactive refresh fails.
func errAuthenticationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnauthenticatedError(codeAuthenticationFailed, "authentication failed", cause)
}

// errRateLimitExceeded returns an error identifying the page whose rate-limit
// retries were exhausted.
func errRateLimitExceeded(page, retries int) *svcerrors.ServiceError {
	return svcerrors.NewRateLimitedError(codeRateLimitExceeded,
		fmt.Sprintf("rate limit exceeded on page %d after %d retries", page, retries), nil)
}

// errFetchFailed returns an error for transport failures and unexpected
// responses. The fetcher does not retry these; callers may retry the whole
// fetch.
func errFetchFailed(page int, cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeFetchFailed,
		fmt.Sprintf("fetch failed on page %d", page), cause)
}

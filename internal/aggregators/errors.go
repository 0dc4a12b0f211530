package aggregators

import (
	"cluster-stats/internal/shared/svcerrors"
)

const (
	codeInvalidCutoff = "AGG_1000"
)

// errInvalidCutoff returns an error when the caller hands over a zero fetch
// cutoff; open sessions could not be clamped deterministically.
func errInvalidCutoff() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidCutoff, "fetch cutoff is required", nil)
}

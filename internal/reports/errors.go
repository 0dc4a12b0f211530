package reports

import (
	"cluster-stats/internal/shared/svcerrors"
)

// ReportStore errors
const (
	codeReportStoreFailed = "RPT_9000"
)

func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeReportStoreFailed, cause)
}

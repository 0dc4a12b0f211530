package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cluster-stats/internal/models"
	"cluster-stats/internal/shared/filestorages"
)

//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	// Put persists one run's usage statistics as JSON and returns the path
	// the report was written to.
	Put(ctx context.Context, campusID int, runID string, stats *models.UsageStats) (string, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage, dir: "usage-reports"}
}

func (s *reportStore) Put(ctx context.Context, campusID int, runID string, stats *models.UsageStats) (string, error) {
	jsonData, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", errInternalReportStoreFailed(fmt.Errorf("marshal usage stats: %w", err))
	}

	key := fmt.Sprintf("%s/campus-%d/%s.json", s.dir, campusID, runID)
	result, err := s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData))
	if err != nil {
		return "", errInternalReportStoreFailed(fmt.Errorf("put usage report: %w", err))
	}

	metricReportsWrittenTotal.Inc()
	return result.Path, nil
}

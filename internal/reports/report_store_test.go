package reports

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cluster-stats/internal/models"
	"cluster-stats/internal/shared/filestorages"
	storagemocks "cluster-stats/internal/shared/filestorages/mocks"
	"cluster-stats/internal/shared/svcerrors"
)

func TestReportStore_Put(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	fileStorage, err := filestorages.NewFileStorage(rootDir)
	require.NoError(t, err)

	store := NewReportStore(fileStorage)

	stats := models.NewEmptyUsageStats()
	stats.TotalSessions = 3
	stats.Hourly[9] = 3
	stats.HostSessionCounts["c1r1s1"] = 3

	path, err := store.Put(context.Background(), 7, "01ARZ3NDEKTSV4RRFFQ69G5FAV", stats)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootDir, "usage-reports", "campus-7", "01ARZ3NDEKTSV4RRFFQ69G5FAV.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	got := models.NewEmptyUsageStats()
	require.NoError(t, json.Unmarshal(data, got))
	assert.Equal(t, stats, got)
}

func TestReportStore_Put_StorageFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fileStorage := storagemocks.NewMockFileStorage(ctrl)
	fileStorage.EXPECT().
		Put(gomock.Any(), "usage-reports/campus-7/run.json", gomock.Any()).
		Return(nil, errors.New("disk full"))

	store := NewReportStore(fileStorage)

	_, err := store.Put(context.Background(), 7, "run", models.NewEmptyUsageStats())
	require.Error(t, err)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "RPT_9000", svcErr.Code)
	assert.True(t, svcErr.IsInternalError())
}

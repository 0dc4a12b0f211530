package configs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigBody = `log:
  level: debug
api:
  base_url: https://api.intra.42.fr
  page_size: 100
  request_timeout: 30
  token_refresh_margin: 60
  rate_limit_retries: 3
  rate_limit_min_wait: 1
  rate_limit_max_wait: 10
campus:
  id: 7
  days_back: 30
aggregation:
  weighting: occurrence
  top_hosts: 20
report:
  root_dir: ./reports
metrics:
  enabled: false
`

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)

	_, err = tmpfile.WriteString(body)
	require.NoError(t, err)
	tmpfile.Close()

	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	t.Setenv("API_UID", "uid-123")
	t.Setenv("API_SECRET", "secret-456")

	cfg, err := LoadConfig(writeConfigFile(t, validConfigBody))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://api.intra.42.fr", cfg.API.BaseURL)
	assert.Equal(t, "uid-123", cfg.API.ClientID)
	assert.Equal(t, "secret-456", cfg.API.ClientSecret)
	assert.Equal(t, 100, cfg.API.PageSize)
	assert.Equal(t, 60, cfg.API.TokenRefreshMargin)
	assert.Equal(t, 3, cfg.API.RateLimitRetries)
	assert.Equal(t, 7, cfg.Campus.ID)
	assert.Equal(t, 30, cfg.Campus.DaysBack)
	assert.Equal(t, "occurrence", cfg.Aggregation.Weighting)
	assert.Equal(t, 20, cfg.Aggregation.TopHosts)
	assert.Equal(t, "./reports", cfg.Report.RootDir)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_MissingCredentials(t *testing.T) {
	t.Setenv("API_UID", "")
	t.Setenv("API_SECRET", "")

	cfg, err := LoadConfig(writeConfigFile(t, validConfigBody))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "client_id")
}

func TestLoadConfig_MissingCampusID(t *testing.T) {
	t.Setenv("API_UID", "uid-123")
	t.Setenv("API_SECRET", "secret-456")

	body := `log:
  level: info
api:
  base_url: https://api.intra.42.fr
  page_size: 100
  request_timeout: 30
  token_refresh_margin: 60
  rate_limit_retries: 3
  rate_limit_min_wait: 1
  rate_limit_max_wait: 10
campus:
  days_back: 30
aggregation:
  weighting: occurrence
  top_hosts: 20
report:
  root_dir: ./reports
`

	cfg, err := LoadConfig(writeConfigFile(t, body))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campus.id")
}

func TestLoadConfig_InvalidWeighting(t *testing.T) {
	t.Setenv("API_UID", "uid-123")
	t.Setenv("API_SECRET", "secret-456")

	body := `log:
  level: info
api:
  base_url: https://api.intra.42.fr
  page_size: 100
  request_timeout: 30
  token_refresh_margin: 60
  rate_limit_retries: 3
  rate_limit_min_wait: 1
  rate_limit_max_wait: 10
campus:
  id: 7
  days_back: 30
aggregation:
  weighting: quadratic
  top_hosts: 20
report:
  root_dir: ./reports
`

	cfg, err := LoadConfig(writeConfigFile(t, body))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weighting")
	assert.Contains(t, err.Error(), "oneof")
}

func TestLoadConfig_DaysBackOutOfRange(t *testing.T) {
	t.Setenv("API_UID", "uid-123")
	t.Setenv("API_SECRET", "secret-456")

	body := `log:
  level: info
api:
  base_url: https://api.intra.42.fr
  page_size: 100
  request_timeout: 30
  token_refresh_margin: 60
  rate_limit_retries: 3
  rate_limit_min_wait: 1
  rate_limit_max_wait: 10
campus:
  id: 7
  days_back: 400
aggregation:
  weighting: occurrence
  top_hosts: 20
report:
  root_dir: ./reports
`

	cfg, err := LoadConfig(writeConfigFile(t, body))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days_back")
	assert.Contains(t, err.Error(), "max=365")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yml")
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

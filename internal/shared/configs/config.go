package configs

// Config holds all configuration for the application.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	API         APIConfig         `mapstructure:"api" validate:"required"`
	Campus      CampusConfig      `mapstructure:"campus" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation" validate:"required"`
	Report      ReportConfig      `mapstructure:"report" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// APIConfig holds remote API client configuration. ClientID and ClientSecret
// are bound to the API_UID and API_SECRET environment variables so credentials
// stay out of the config file. Timeouts, the refresh margin, and the rate
// limit waits are in seconds; RateLimitRetries bounds retries per page.
type APIConfig struct {
	BaseURL            string `mapstructure:"base_url" validate:"required,url"`
	ClientID           string `mapstructure:"client_id" validate:"required"`
	ClientSecret       string `mapstructure:"client_secret" validate:"required"`
	PageSize           int    `mapstructure:"page_size" validate:"required,min=1,max=100"`
	RequestTimeout     int    `mapstructure:"request_timeout" validate:"required,min=1"`
	TokenRefreshMargin int    `mapstructure:"token_refresh_margin" validate:"required,min=1"`
	RateLimitRetries   int    `mapstructure:"rate_limit_retries" validate:"required,min=1,max=10"`
	RateLimitMinWait   int    `mapstructure:"rate_limit_min_wait" validate:"required,min=1"`
	RateLimitMaxWait   int    `mapstructure:"rate_limit_max_wait" validate:"required,min=1"`
}

// CampusConfig selects which campus and how far back to fetch.
type CampusConfig struct {
	ID       int `mapstructure:"id" validate:"required,min=1"`
	DaysBack int `mapstructure:"days_back" validate:"required,min=1,max=365"`
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	Weighting string `mapstructure:"weighting" validate:"required,oneof=occurrence duration"`
	TopHosts  int    `mapstructure:"top_hosts" validate:"required,min=1"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// MetricsConfig holds the optional metrics endpoint configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

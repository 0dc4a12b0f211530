package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grafana/dskit/backoff"

	"cluster-stats/internal/aggregators"
	"cluster-stats/internal/fetchers"
	"cluster-stats/internal/reports"
	"cluster-stats/internal/shared/configs"
	"cluster-stats/internal/shared/filestorages"
	"cluster-stats/internal/shared/loggers"
	"cluster-stats/internal/shared/metrics"
	"cluster-stats/internal/shared/ulid"
)

// App holds all application dependencies and manages lifecycle. One Run is a
// complete pipeline pass: fetch sessions, aggregate them, write the report.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	sessionFetcher     fetchers.SessionFetcher
	aggregationService aggregators.AggregationService
	reportStore        reports.ReportStore

	metricsServer *http.Server

	newRunID func() string
	now      func() time.Time
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "cluster-stats").
		Logger()

	// Initialize session fetcher
	sessionFetcher := fetchers.NewSessionFetcher(fetchers.Config{
		BaseURL:             config.API.BaseURL,
		ClientID:            config.API.ClientID,
		ClientSecret:        config.API.ClientSecret,
		PageSize:            config.API.PageSize,
		RequestTimeout:      time.Duration(config.API.RequestTimeout) * time.Second,
		TokenRefreshMargin:  time.Duration(config.API.TokenRefreshMargin) * time.Second,
		MaxRateLimitRetries: config.API.RateLimitRetries,
		BackoffConfig: backoff.Config{
			MinBackoff: time.Duration(config.API.RateLimitMinWait) * time.Second,
			MaxBackoff: time.Duration(config.API.RateLimitMaxWait) * time.Second,
		},
	})

	// Initialize aggregation service
	weighting, err := aggregators.NewWeightingFromString(config.Aggregation.Weighting)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize weighting: %w", err)
	}
	decomposer := aggregators.NewHourBucketDecomposer()
	aggregationService := aggregators.NewAggregationService(decomposer, weighting, config.Aggregation.TopHosts)

	// Initialize report store
	fileStorage, err := filestorages.NewFileStorage(config.Report.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	reportStore := reports.NewReportStore(fileStorage)

	application := &App{
		config:             config,
		appLogger:          appLogger,
		sessionFetcher:     sessionFetcher,
		aggregationService: aggregationService,
		reportStore:        reportStore,
		newRunID:           ulid.NewULID,
		now:                time.Now,
	}

	if config.Metrics.Enabled {
		router := chi.NewRouter()
		router.Use(middleware.Recoverer)
		router.Method(http.MethodGet, "/metrics", metrics.PromHTTP.Handler())
		application.metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Metrics.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return application, nil
}

// RunResult describes one completed pipeline pass.
type RunResult struct {
	RunID      string
	ReportPath string
	Summary    string
}

// Run executes one fetch-aggregate-report pass and returns where the report
// was written together with the rendered summary.
func (app *App) Run(ctx context.Context) (*RunResult, error) {
	runID := app.newRunID()
	runLogger := app.appLogger.With().
		Str(loggers.FieldRunID, runID).
		Int(loggers.FieldCampusID, app.config.Campus.ID).
		Logger()
	ctx = runLogger.WithContext(ctx)

	until := app.now()
	since := until.AddDate(0, 0, -app.config.Campus.DaysBack)

	runLogger.Info().
		Msgf("starting usage run over the last %d days (weighting=%s)",
			app.config.Campus.DaysBack, app.config.Aggregation.Weighting)

	fetchResult, err := app.sessionFetcher.Fetch(ctx, app.config.Campus.ID, since, until)
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}

	stats, err := app.aggregationService.Aggregate(ctx, fetchResult.Sessions, fetchResult.FetchCutoff)
	if err != nil {
		return nil, fmt.Errorf("aggregate sessions: %w", err)
	}

	reportPath, err := app.reportStore.Put(ctx, app.config.Campus.ID, runID, stats)
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	runLogger.Info().
		Int(loggers.FieldSessionCount, int(stats.TotalSessions)).
		Int(loggers.FieldSkippedCount, int(stats.SkippedRecords)).
		Msgf("usage run completed, report written to %s", reportPath)

	return &RunResult{
		RunID:      runID,
		ReportPath: reportPath,
		Summary:    reports.RenderSummary(stats),
	}, nil
}

// StartMetrics starts the metrics endpoint in a blocking manner. It returns
// immediately when metrics are disabled.
func (app *App) StartMetrics() error {
	if app.metricsServer == nil {
		return nil
	}
	app.appLogger.Info().
		Msgf("serving metrics on port %d", app.config.Metrics.Port)
	return app.metricsServer.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	if app.metricsServer == nil {
		return nil
	}
	app.appLogger.Info().Msg("Shutting down metrics server...")
	if err := app.metricsServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Metrics server stopped")
	return nil
}

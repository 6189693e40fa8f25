// Package application provides application-level services and dependency injection.
package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jbctechsolutions/modelworth/internal/adapters/catalog"
	"github.com/jbctechsolutions/modelworth/internal/adapters/fetch"
	"github.com/jbctechsolutions/modelworth/internal/application/ports"
	appPricing "github.com/jbctechsolutions/modelworth/internal/application/pricing"
	domainErrors "github.com/jbctechsolutions/modelworth/internal/domain/errors"
	domainPricing "github.com/jbctechsolutions/modelworth/internal/domain/pricing"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/config"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/logging"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/storage"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/tracing"
	"github.com/jbctechsolutions/modelworth/internal/infrastructure/watch"
)

// Container holds all application dependencies and provides a central
// point for dependency injection. It manages the lifecycle of services
// and ensures proper initialization order.
type Container struct {
	// Configuration
	config  *config.Config
	verbose bool // Override log level to debug when true

	// Database connection
	dbConn *storage.Connection
	db     *sql.DB

	// Repositories
	prefsRepo ports.PreferencesPort

	// Observability
	logger *logging.Logger
	tracer *tracing.Tracer

	// Application services
	pricingService *appPricing.Service

	// Config hot reload
	watcher *watch.Watcher
}

// NewContainer creates a new dependency injection container with all services
// initialized based on the provided configuration.
func NewContainer(cfg *config.Config, verbose bool) (*Container, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	c := &Container{
		config:  cfg,
		verbose: verbose,
	}

	c.initObservability()

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := c.initServices(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return c, nil
}

// initObservability initializes the logger and tracer.
func (c *Container) initObservability() {
	level := logging.Level(c.config.Logging.Level)
	if c.verbose {
		level = logging.LevelDebug
	}
	c.logger = logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(c.config.Logging.Format),
	})

	tracingCfg := tracing.DefaultConfig()
	tc := c.config.Observability.Tracing
	tracingCfg.Enabled = tc.Enabled
	if tc.ExporterType != "" {
		tracingCfg.ExporterType = tracing.ExporterType(tc.ExporterType)
	}
	tracingCfg.OTLPEndpoint = tc.OTLPEndpoint
	if tc.ServiceName != "" {
		tracingCfg.ServiceName = tc.ServiceName
	}
	tracingCfg.SampleRate = tc.SampleRate

	tracer, err := tracing.New(context.Background(), tracingCfg)
	if err != nil {
		// Tracing is optional; fall back to the no-op tracer.
		c.logger.Warn("could not initialize tracing", "error", err.Error())
		tracer = tracing.Default()
	}
	c.tracer = tracer
}

// initDatabase initializes the SQLite database connection.
func (c *Container) initDatabase() error {
	dbPath, err := config.ExpandPath(c.config.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}

	conn, err := storage.NewConnection(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := conn.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db, err := conn.DB()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	c.dbConn = conn
	c.db = db
	c.prefsRepo = storage.NewPreferencesRepository(db)
	return nil
}

// initServices initializes the pricing service with one fetcher per source.
func (c *Container) initServices() error {
	openRouterOpts := []fetch.OpenRouterOption{
		fetch.WithOpenRouterTimeout(c.config.Sources.OpenRouter.Timeout),
	}
	if url := c.config.Sources.OpenRouter.URL; url != "" {
		openRouterOpts = append(openRouterOpts, fetch.WithOpenRouterBaseURL(url))
	}

	heliconeOpts := []fetch.HeliconeOption{
		fetch.WithHeliconeTimeout(c.config.Sources.Helicone.Timeout),
	}
	if url := c.config.Sources.Helicone.URL; url != "" {
		heliconeOpts = append(heliconeOpts, fetch.WithHeliconeBaseURL(url))
	}

	liteLLMOpts := []fetch.LiteLLMOption{
		fetch.WithLiteLLMTimeout(c.config.Sources.LiteLLM.Timeout),
	}
	if url := c.config.Sources.LiteLLM.URL; url != "" {
		liteLLMOpts = append(liteLLMOpts, fetch.WithLiteLLMURL(url))
	}

	c.pricingService = appPricing.NewService(
		appPricing.WithFetcher(catalog.SourceOpenRouter, fetch.NewOpenRouterClient(openRouterOpts...)),
		appPricing.WithFetcher(catalog.SourceHelicone, fetch.NewHeliconeClient(heliconeOpts...)),
		appPricing.WithFetcher(catalog.SourceLiteLLM, fetch.NewLiteLLMClient(liteLLMOpts...)),
		appPricing.WithScorer(c.buildScorer()),
		appPricing.WithPreferences(c.prefsRepo),
		appPricing.WithLogger(c.logger),
		appPricing.WithTracer(c.tracer),
	)

	return nil
}

// buildScorer derives the scorer from config, with stored preference
// overrides taking precedence.
func (c *Container) buildScorer() domainPricing.Scorer {
	scorer := domainPricing.Scorer{
		Baseline:      c.config.Value.Baseline,
		RankDecayBase: c.config.Value.RankDecayBase,
	}

	if c.prefsRepo != nil {
		baseline, decay, err := c.prefsRepo.ScorerOverrides(context.Background())
		if err == nil {
			scorer.Baseline = baseline
			scorer.RankDecayBase = decay
		}
	}

	return scorer
}

// PricingService returns the pricing application service.
func (c *Container) PricingService() *appPricing.Service {
	return c.pricingService
}

// Preferences returns the preferences repository.
func (c *Container) Preferences() ports.PreferencesPort {
	return c.prefsRepo
}

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger.
func (c *Container) Logger() *logging.Logger {
	return c.logger
}

// PreferredSource returns the source to load on demand: the stored
// preference when present, the configured default otherwise.
func (c *Container) PreferredSource(ctx context.Context) catalog.Source {
	if c.prefsRepo != nil {
		if stored, err := c.prefsRepo.Source(ctx); err == nil {
			s := catalog.Source(stored)
			if s.Valid() {
				return s
			}
		}
	}
	return catalog.Source(c.config.Pricing.DefaultSource)
}

// EnsureCatalog loads a catalog from the preferred source if none is active.
// Commands that read the catalog call this first, so the first lookup of a
// session triggers exactly one fetch.
func (c *Container) EnsureCatalog(ctx context.Context) error {
	if _, _, err := c.pricingService.Resolve(ctx, ""); !errors.Is(err, domainErrors.ErrNoCatalog) {
		return nil
	}
	return c.pricingService.SwitchSource(ctx, c.PreferredSource(ctx))
}

// StartConfigWatching watches the config file at path and applies scorer
// setting changes from it without a restart. An empty path watches the
// default config location. Intended for the interactive shell; one-shot
// commands exit before a reload could matter.
func (c *Container) StartConfigWatching(ctx context.Context, path string) error {
	loader, err := config.NewLoader("")
	if err != nil {
		return fmt.Errorf("failed to create config loader: %w", err)
	}
	if path == "" {
		path = loader.DefaultConfigPath()
	}

	watcher, err := watch.NewWatcher(path, watch.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch config file: %w", err)
	}
	c.watcher = watcher

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events():
				if !ok {
					return
				}
				c.reloadConfig(ctx, loader, event.Path)
			case err, ok := <-watcher.Errors():
				if !ok {
					return
				}
				c.logger.WarnContext(ctx, "config watcher error", "error", err.Error())
			}
		}
	}()

	return nil
}

// reloadConfig re-reads an edited config file and applies its value scoring
// settings to the running service. A changed default source triggers a
// catalog rebuild from the new source.
func (c *Container) reloadConfig(ctx context.Context, loader *config.Loader, path string) {
	cfg, err := loader.LoadFromFile(path)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to reload config", "path", path, "error", err.Error())
		return
	}
	if err := cfg.Validate(); err != nil {
		c.logger.WarnContext(ctx, "ignoring invalid config", "path", path, "error", err.Error())
		return
	}

	if cfg.Value != c.config.Value {
		c.config.Value = cfg.Value
		c.pricingService.SetScorer(domainPricing.Scorer{
			Baseline:      cfg.Value.Baseline,
			RankDecayBase: cfg.Value.RankDecayBase,
		})
		c.logger.InfoContext(ctx, "reloaded value scoring config",
			"baseline", cfg.Value.Baseline,
			"rank_decay_base", cfg.Value.RankDecayBase,
		)
	}

	if cfg.Pricing.DefaultSource != c.config.Pricing.DefaultSource {
		c.config.Pricing.DefaultSource = cfg.Pricing.DefaultSource
		source := catalog.Source(cfg.Pricing.DefaultSource)
		if source.Valid() {
			if err := c.pricingService.SwitchSource(ctx, source); err != nil {
				c.logger.WarnContext(ctx, "failed to switch source from config", "source", string(source), "error", err.Error())
			}
		}
	}
}

// Close releases all container resources.
func (c *Container) Close() error {
	var errs []error

	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close config watcher: %w", err))
		}
	}

	if c.tracer != nil {
		if err := c.tracer.Shutdown(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracer: %w", err))
		}
	}

	if c.dbConn != nil {
		if err := c.dbConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Package container provides dependency injection for the lendtrack application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/lendtrack/internal/config"
	"fjacquet/lendtrack/internal/dashboard"
	"fjacquet/lendtrack/internal/logging"
	"fjacquet/lendtrack/internal/report"
	"fjacquet/lendtrack/internal/service"
	"fjacquet/lendtrack/internal/store"
	"fjacquet/lendtrack/internal/timeseries"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.SnapshotStore
	aggregator *timeseries.Aggregator
	generator  *report.Generator
	ledger     *service.LedgerService
}

// Option overrides a dependency, mainly for tests.
type Option func(*Container)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithStore replaces the file-backed snapshot store.
func WithStore(st store.SnapshotStore) Option {
	return func(c *Container) {
		c.store = st
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	// Create logger first as it's needed by other components
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	if c.store == nil {
		c.store = store.NewFileStore(cfg.Data.File, c.logger)
	}

	c.aggregator = timeseries.NewAggregator(timeseries.WithWeekStart(cfg.WeekStart()))
	c.generator = report.NewGenerator(c.logger, cfg.Delimiter(), cfg.Report.MarkdownStyle)
	c.ledger = service.NewLedgerService(
		c.store,
		c.aggregator,
		dashboard.NewBuilder(cfg.DashboardOptions(), c.logger),
		cfg.Convention(),
		c.logger,
	)

	c.logger.Debug("Container initialized successfully",
		logging.F(logging.FieldFile, cfg.Data.File),
		logging.F(logging.FieldConvention, cfg.Convention().String()))

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the snapshot store.
func (c *Container) GetStore() store.SnapshotStore {
	return c.store
}

// GetAggregator returns the time-series aggregator configured with the
// week start.
func (c *Container) GetAggregator() *timeseries.Aggregator {
	return c.aggregator
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetLedger returns the ledger service.
func (c *Container) GetLedger() *service.LedgerService {
	return c.ledger
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}

// Package container provides dependency injection for the vss-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/vss-csv/internal/batch"
	"fjacquet/vss-csv/internal/common"
	"fjacquet/vss-csv/internal/config"
	"fjacquet/vss-csv/internal/logging"
	"fjacquet/vss-csv/internal/models"
	"fjacquet/vss-csv/internal/report"
	"fjacquet/vss-csv/internal/store"
	"fjacquet/vss-csv/internal/vssparser"
)

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.PositionStore
	positions models.PositionTable
	writer    *common.Writer
	parser    *vssparser.Adapter
	batch     *batch.BatchRunner
	reports   *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around logger. The position
// table is loaded once here, so a broken positions file fails fast.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	positionStore := store.NewPositionStore(cfg.Positions.File, logger)
	positions, err := positionStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load field positions: %w", err)
	}

	writer := common.NewWriter(cfg.Delimiter(), cfg.CSV.DateFormat, logger)
	adapter := vssparser.NewAdapter(positions, logger, writer)
	runner := batch.NewBatchRunner(adapter, writer, logger, batch.Options{
		Workers:    cfg.Batch.Workers,
		Extensions: cfg.Batch.Extensions,
	})

	logger.Debug("Container initialized successfully",
		logging.F("positions_file", cfg.Positions.File),
		logging.F(logging.FieldWorkers, runner.Workers()))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     positionStore,
		positions: positions,
		writer:    writer,
		parser:    adapter,
		batch:     runner,
		reports:   report.NewReportGenerator(logger),
	}, nil
}

// GetParser returns the VSS report parser.
func (c *Container) GetParser() *vssparser.Adapter {
	return c.parser
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the position store.
func (c *Container) GetStore() *store.PositionStore {
	return c.store
}

// GetPositions returns a copy of the effective position table.
func (c *Container) GetPositions() models.PositionTable {
	return models.PositionTable{}.Merge(c.positions)
}

// GetWriter returns the CSV writer.
func (c *Container) GetWriter() *common.Writer {
	return c.writer
}

// GetBatchRunner returns the directory batch runner.
func (c *Container) GetBatchRunner() *batch.BatchRunner {
	return c.batch
}

// GetReportGenerator returns the summary encoder.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	// Currently no resources need explicit cleanup
	c.logger.Debug("Container closed")
	return nil
}

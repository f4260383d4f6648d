// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/vss-csv/internal/config"
	"fjacquet/vss-csv/internal/container"
	"fjacquet/vss-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

// ConfigFlags override configuration values for a single invocation.
type ConfigFlags struct {
	ConfigFile   string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string
	Positions    string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "vss-csv",
		Short: "A CLI tool to convert VSS settlement reports to CSV.",
		Long: `vss-csv converts fixed-width VisaNet Settlement Service reports
(VSS-110, VSS-120, VSS-130, VSS-140 and VSS-900-S) into one CSV file per
report type, and summarizes their totals.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to vss-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Initialize(cmd)
		},
		SilenceUsage: true,
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// Overrides are the configuration flags
	Overrides = ConfigFlags{}

	mu           sync.Mutex
	appContainer *container.Container
	appConfig    *config.Config
	initOnce     sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory or file")
		flags.BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")

		flags.StringVar(&Overrides.ConfigFile, "config", "", "Config file (default searches $HOME/.vss-csv, .vss-csv and .)")
		flags.StringVar(&Overrides.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.StringVar(&Overrides.LogFormat, "log-format", "", "Log format (text or json)")
		flags.StringVar(&Overrides.CSVDelimiter, "csv-delimiter", "", "CSV delimiter character")
		flags.StringVar(&Overrides.Positions, "positions", "", "YAML field-position table")
	})
}

// Initialize loads .env and the configuration, applies the flags set on cmd
// and builds the application container.
func Initialize(cmd *cobra.Command) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFile(Overrides.ConfigFile)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	SetContainer(c)
	return nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}
	if changed("log-level") {
		cfg.Log.Level = Overrides.LogLevel
	}
	if changed("log-format") {
		cfg.Log.Format = Overrides.LogFormat
	}
	if changed("csv-delimiter") {
		cfg.CSV.Delimiter = Overrides.CSVDelimiter
	}
	if changed("positions") {
		cfg.Positions.File = Overrides.Positions
	}
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
	if c != nil {
		appConfig = c.GetConfig()
	}
}

// GetContainer returns the application container, building one from the
// default configuration sources when no command initialized it. It returns
// nil if that fails.
func GetContainer() *container.Container {
	mu.Lock()
	defer mu.Unlock()
	if appContainer != nil {
		return appContainer
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		Log.WithError(err).Error("Failed to load configuration")
		return nil
	}
	c, err := container.NewContainer(cfg)
	if err != nil {
		Log.WithError(err).Error("Failed to build container")
		return nil
	}
	appContainer, appConfig = c, cfg
	return appContainer
}

// GetConfig returns the active configuration, or the defaults.
func GetConfig() *config.Config {
	if c := GetContainer(); c != nil {
		return c.GetConfig()
	}
	mu.Lock()
	defer mu.Unlock()
	if appConfig != nil {
		return appConfig
	}
	return config.Default()
}

// GetLogrusAdapter returns the container logger, or an adapter over Log.
func GetLogrusAdapter() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}

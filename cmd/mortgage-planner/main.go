package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/finhouse/mortgage-planner/internal/config"
	"github.com/finhouse/mortgage-planner/internal/prefs"
	"github.com/finhouse/mortgage-planner/internal/server"
	"github.com/finhouse/mortgage-planner/pkg/amortize"
	"github.com/finhouse/mortgage-planner/pkg/constants"
	"github.com/finhouse/mortgage-planner/pkg/currency"
	"github.com/finhouse/mortgage-planner/pkg/export"
	"github.com/finhouse/mortgage-planner/pkg/output"
	"github.com/finhouse/mortgage-planner/pkg/validation"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the web UI server instead of a one-shot calculation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	// Load environment overrides from a local .env file when present.
	_ = godotenv.Load()

	// Load the config file to get logging configuration. A missing config
	// file is fine; the built-in defaults describe a complete loan.
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) || errors.Is(err, fs.ErrNotExist) {
			conf = &config.Configuration{}
		} else {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		runServer(logger, *serverConfigLocation)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Resolve the configuration into engine inputs and compute the schedule.
	inputs := conf.Resolve()
	result := amortize.Schedule(inputs.Params, inputs.Policy, inputs.LumpSums, inputs.RatePeriods)
	summary := export.BuildSummary(inputs.Params, result, inputs.Currency)

	logger.Debug("schedule computed",
		zap.String("op", "main"),
		zap.Int("totalMonths", result.TotalMonths),
		zap.String("outcome", result.Outcome.String()),
	)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result, summary)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(os.Stdout, result, summary); err != nil {
			logger.Fatal("failed to write CSV output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case constants.OutputFormatPDF:
		if err := export.WritePDF(os.Stdout, result, summary); err != nil {
			logger.Fatal("failed to write PDF output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

func runServer(logger *zap.Logger, configPath string) {
	serverConf, err := server.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}

	store, err := prefs.Open(serverConf.PreferencesPath)
	if err != nil {
		// The server is useful without persistence; run with the store
		// disabled rather than refusing to start.
		logger.Warn("preference store unavailable, currency preference will not persist",
			zap.String("op", "main.runServer"),
			zap.String("path", serverConf.PreferencesPath),
			zap.Error(err),
		)
		store = nil
	} else {
		defer func() {
			_ = store.Close()
		}()
	}

	rates := currency.NewClient(logger, serverConf.RatesEndpoint)
	handler := server.NewHandler(logger, store, rates, serverConf.MaxBodyBytes(), version)

	logger.Info("starting web UI server",
		zap.String("op", "main.runServer"),
		zap.String("address", serverConf.Address),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}

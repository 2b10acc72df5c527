package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iwvelando/finance-calculator/internal/cache"
	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/internal/report"
	"github.com/iwvelando/finance-calculator/internal/server"
	"github.com/iwvelando/finance-calculator/internal/tracing"
	"github.com/iwvelando/finance-calculator/pkg/adapters"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/output"
	"github.com/iwvelando/finance-calculator/pkg/params"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

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

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to batch configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a batch report")
	serverConfig := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	calculatorName := flag.String("calculator", "", "evaluate a single calculator instead of the batch file")
	query := flag.String("query", "", "query string parameters for -calculator, e.g. amount=10000&return=10&duration=5")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	var err error
	switch {
	case *serve:
		err = runServer(*serverConfig, *logLevel)
	case *calculatorName != "":
		err = runSingle(os.Stdout, *calculatorName, *query, *outputFormatFlag, *logLevel)
	default:
		err = runBatch(os.Stdout, *configLocation, *outputFormatFlag, *logLevel)
	}
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q}\n", err.Error())
		os.Exit(1)
	}
}

// resolveOutputFormat applies the CLI override over the configured format.
func resolveOutputFormat(configured, override string) (string, error) {
	outputFormat := configured
	if override != "" {
		outputFormat = override
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

func runBatch(w io.Writer, configLocation, outputFormatFlag, logLevel string) error {
	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := resolveOutputFormat(conf.Output.Format, outputFormatFlag)
	if err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := report.GetReports(logger, *conf)
	if err != nil {
		logger.Error("failed to evaluate calculations",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	return output.Write(w, outputFormat, results)
}

func runSingle(w io.Writer, name, rawQuery, outputFormatFlag, logLevel string) error {
	logger, err := initializeLogger(config.LoggingConfig{}, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := resolveOutputFormat("", outputFormatFlag)
	if err != nil {
		return err
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", rawQuery, err)
	}

	evaluation, err := adapters.Evaluate(name, values)
	if err != nil {
		return err
	}
	for _, warning := range evaluation.Warnings {
		logger.Warn(warning,
			zap.String("op", "main"),
			zap.String("calculator", evaluation.Calculator),
		)
	}

	baseURL := os.Getenv(server.EnvBaseURL)
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}
	results := []report.Report{{
		Name:       evaluation.Calculator,
		Evaluation: evaluation,
		ShareURL:   params.ShareURL(baseURL, evaluation.Calculator, evaluation.Query),
	}}
	return output.Write(w, outputFormat, results)
}

func runServer(configLocation, logLevel string) error {
	cfg, err := server.LoadConfig(configLocation)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Tracing.Version = version
	shutdownTracing, err := tracing.Init(ctx, logger, cfg.Tracing)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.CacheOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close cache", zap.String("op", "main"), zap.Error(err))
		}
	}()
	if r, ok := store.(*cache.Redis); ok {
		if err := r.Ping(ctx); err != nil {
			logger.Warn("redis cache is unreachable, evaluations will not be cached until it recovers",
				zap.String("op", "main"),
				zap.String("addr", cfg.Cache.Addr),
				zap.Error(err),
			)
		}
	}

	srv := server.New(logger, cfg, store, version)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", zap.String("op", "main"), zap.Error(err))
		}
		_ = shutdownTracing(context.Background())
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", zap.String("op", "main"), zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("failed to flush traces", zap.String("op", "main"), zap.Error(err))
	}

	logger.Info("server exited", zap.String("op", "main"))
	return nil
}

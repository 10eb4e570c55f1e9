// Package main implements the entry point for the csv2json converter.
// csv2json reads delimited text rows and emits one JSON value per line,
// either an array or an object keyed by the first line's column names.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/berquerant/csv2json/config"
	"github.com/berquerant/csv2json/engine"
	"github.com/berquerant/csv2json/input"
	"github.com/berquerant/csv2json/metric"
	"github.com/berquerant/csv2json/output"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "csv2json"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Conversion failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	// Parse and validate CLI flags
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	// Load and validate configuration
	cfg, err := initializeConfiguration(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	// Cancel the run between lines on SIGINT/SIGTERM
	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	registry := metric.NewMetricsRegistry()
	stopMetrics, err := startMetricsServer(cfg, registry)
	if err != nil {
		return err
	}
	defer stopMetrics()

	return convert(signalCtx, cfg, registry)
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Debug("Starting csv2json",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, false, nil
}

// initializeConfiguration loads the config file, applies flag
// overrides, and validates the result
func initializeConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cliCfg.ConfigPath != "" {
		loaded, err := config.Load(cliCfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = *loaded
	}

	applyFlagOverrides(&cfg, cliCfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyFlagOverrides layers flags over the file config. Flags carry
// their environment fallbacks as defaults, so precedence is
// defaults < config file < environment < command line.
func applyFlagOverrides(cfg *config.Config, cliCfg *CLIConfig) {
	if cliCfg.Input != config.StdStream {
		cfg.Input = cliCfg.Input
	}
	if cliCfg.Output != config.StdStream {
		cfg.Output = cliCfg.Output
	}
	if cliCfg.Header {
		cfg.Header = true
	}
	if cliCfg.OnError != config.OnErrorSkip {
		cfg.OnError = cliCfg.OnError
	}
	if cliCfg.Append {
		cfg.Append = true
	}
	if cliCfg.MetricsPort != 0 {
		cfg.MetricsPort = cliCfg.MetricsPort
	}
}

// startMetricsServer starts the optional metrics endpoint; the returned
// stop function is safe to call unconditionally
func startMetricsServer(cfg *config.Config, registry *metric.MetricsRegistry) (func(), error) {
	if cfg.MetricsPort <= 0 {
		return func() {}, nil
	}

	server := metric.NewServer(cfg.MetricsPort, "/metrics", registry, slog.Default())
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("start metrics server: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			slog.Warn("Stopping metrics server failed", "error", err)
		}
	}, nil
}

// convert wires source, engine, and sink together and runs the loop
func convert(ctx context.Context, cfg *config.Config, registry *metric.MetricsRegistry) error {
	policy, err := engine.ParsePolicy(cfg.OnError)
	if err != nil {
		return err
	}

	reader, err := input.New(input.Config{
		Path:       cfg.Input,
		BufferSize: cfg.BufferSize,
	}, slog.Default())
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			slog.Warn("Closing input failed", "error", err)
		}
	}()

	outCfg := output.DefaultConfig()
	outCfg.Path = cfg.Output
	outCfg.Append = cfg.Append
	writer, err := output.New(outCfg, slog.Default())
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	eng := engine.New(reader, writer, engine.Options{
		Header:  cfg.Header,
		Policy:  policy,
		Metrics: registry.CoreMetrics(),
		Logger:  slog.Default(),
	})

	stats, runErr := eng.Run(ctx)

	// Flush what was already written even when the run failed.
	if err := writer.Close(); err != nil {
		if runErr == nil {
			runErr = fmt.Errorf("close output: %w", err)
		} else {
			slog.Warn("Closing output failed", "error", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("run %s: %w", eng.RunID(), runErr)
	}

	slog.Info("Done",
		"lines_read", stats.LinesRead,
		"rows_converted", stats.RowsConverted,
		"rows_skipped", stats.RowsSkipped)
	return nil
}

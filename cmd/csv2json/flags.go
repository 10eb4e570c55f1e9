package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/berquerant/csv2json/config"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Input       string
	Output      string
	Header      bool
	OnError     string
	Append      bool
	MetricsPort int
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("CSV2JSON_CONFIG", ""),
		"Path to configuration file, empty for defaults (env: CSV2JSON_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("CSV2JSON_CONFIG", ""),
		"Path to configuration file, empty for defaults (env: CSV2JSON_CONFIG)")

	flag.StringVar(&cfg.Input, "input",
		getEnv("CSV2JSON_INPUT", config.StdStream),
		"CSV input path, - for stdin (env: CSV2JSON_INPUT)")

	flag.StringVar(&cfg.Input, "i",
		getEnv("CSV2JSON_INPUT", config.StdStream),
		"CSV input path, - for stdin (env: CSV2JSON_INPUT)")

	flag.StringVar(&cfg.Output, "output",
		getEnv("CSV2JSON_OUTPUT", config.StdStream),
		"JSONL output path, - for stdout (env: CSV2JSON_OUTPUT)")

	flag.StringVar(&cfg.Output, "o",
		getEnv("CSV2JSON_OUTPUT", config.StdStream),
		"JSONL output path, - for stdout (env: CSV2JSON_OUTPUT)")

	flag.BoolVar(&cfg.Header, "header",
		getEnvBool("CSV2JSON_HEADER", false),
		"Treat the first line as column names and emit objects (env: CSV2JSON_HEADER)")

	flag.StringVar(&cfg.OnError, "on-error",
		getEnv("CSV2JSON_ON_ERROR", config.OnErrorSkip),
		"Malformed line policy: skip, abort (env: CSV2JSON_ON_ERROR)")

	flag.BoolVar(&cfg.Append, "append",
		getEnvBool("CSV2JSON_APPEND", false),
		"Append to the output file instead of truncating (env: CSV2JSON_APPEND)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("CSV2JSON_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: CSV2JSON_METRICS_PORT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("CSV2JSON_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: CSV2JSON_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("CSV2JSON_LOG_FORMAT", "text"),
		"Log format: json, text (env: CSV2JSON_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate config file exists when one was requested
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Validate error policy
	validPolicies := []string{config.OnErrorSkip, config.OnErrorAbort}
	if !contains(validPolicies, cfg.OnError) {
		return fmt.Errorf("invalid on-error policy: %s", cfg.OnError)
	}

	// Validate metrics port
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - CSV to JSON Lines converter

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Convert stdin to stdout, one JSON array per line
  cat data.csv | %s

  # Key objects by the first line's column names
  %s --header --input=data.csv --output=data.jsonl

  # Abort on the first malformed line
  %s --on-error=abort --input=data.csv

  # Run with environment variables
  export CSV2JSON_HEADER=true
  export CSV2JSON_LOG_LEVEL=debug
  %s --input=data.csv

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

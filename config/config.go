package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/berquerant/csv2json/errors"
)

// Error policy names accepted by Config.OnError.
const (
	// OnErrorSkip drops a malformed line with a diagnostic and continues.
	OnErrorSkip = "skip"
	// OnErrorAbort stops the whole run at the first malformed line.
	OnErrorAbort = "abort"
)

// StdStream is the path value selecting stdin or stdout.
const StdStream = "-"

// Config holds converter configuration
type Config struct {
	// Input is the path of the CSV input file, or "-" for stdin.
	Input string `json:"input"`
	// Output is the path of the JSONL output file, or "-" for stdout.
	Output string `json:"output"`
	// Header consumes the first line as column names and emits JSON
	// objects instead of arrays.
	Header bool `json:"header"`
	// OnError selects the malformed-line policy: skip or abort.
	OnError string `json:"on_error"`
	// Append opens the output file in append mode.
	Append bool `json:"append"`
	// BufferSize is the maximum input line length in bytes.
	BufferSize int `json:"buffer_size"`
	// MetricsPort exposes prometheus metrics over HTTP; 0 disables.
	MetricsPort int `json:"metrics_port"`
}

// DefaultConfig returns the default converter configuration
func DefaultConfig() Config {
	return Config{
		Input:       StdStream,
		Output:      StdStream,
		Header:      false,
		OnError:     OnErrorSkip,
		Append:      false,
		BufferSize:  1 << 20,
		MetricsPort: 0,
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"input is required")
	}

	if c.Output == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate",
			"output is required")
	}

	if c.OnError != OnErrorSkip && c.OnError != OnErrorAbort {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("on_error must be %q or %q, got %q", OnErrorSkip, OnErrorAbort, c.OnError))
	}

	if c.BufferSize <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"buffer_size must be positive")
	}

	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			fmt.Sprintf("invalid metrics port: %d", c.MetricsPort))
	}

	return nil
}

// Load reads a JSON configuration file over the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapInvalid(errors.ErrConfigNotFound, "Config", "Load",
				fmt.Sprintf("read %s", path))
		}
		return nil, errors.WrapFatal(err, "Config", "Load", fmt.Sprintf("read %s", path))
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "Config", "Load",
			fmt.Sprintf("parse %s", path))
	}

	return &cfg, nil
}

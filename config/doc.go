// Package config defines the converter configuration.
//
// Configuration is read from a JSON file and overridden by CLI flags and
// environment variables in the cmd layer. The zero configuration is not
// usable; start from DefaultConfig and call Validate before handing the
// result to the engine.
package config

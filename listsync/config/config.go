// Package config loads the listsync configuration from a TOML file.
package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/BurntSushi/toml"

	"znkr.io/listsync/listsync/records"
)

// Config holds all settings of the listsync tool. Command line flags take precedence.
type Config struct {
	Separator string `toml:"separator"` // Field separator, white space if empty
	KeyField  int    `toml:"key_field"` // 1-based key field, 0 for whole line keys
	Updates   bool   `toml:"updates"`   // Report changed payloads of records with the same key
	Addr      string `toml:"addr"`      // Address to serve the live report on, not served if empty
	Lang      string `toml:"lang"`      // Language for syntax highlighting, guessed if empty
	Title     string `toml:"title"`     // Report title
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Separator: ",",
		KeyField:  0,
		Updates:   true,
		Title:     "listsync",
	}
}

// Load reads the configuration from path. Settings missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("decoding %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// RecordOptions returns the options to parse records with.
func (c *Config) RecordOptions() records.Options {
	return records.Options{
		Separator: c.Separator,
		KeyField:  c.KeyField,
	}
}

// ValidationError describes an invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks all settings and returns a ValidateErrors listing every invalid one.
func (c *Config) Validate() error {
	var errs ValidateErrors
	if c.KeyField < 0 {
		errs = append(errs, ValidationError{
			Field:   "key_field",
			Message: fmt.Sprintf("must not be negative, got %d", c.KeyField),
		})
	}
	if c.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Addr); err != nil {
			errs = append(errs, ValidationError{
				Field:   "addr",
				Message: err.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

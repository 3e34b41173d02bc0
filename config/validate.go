package config

import (
	"errors"
	"fmt"
	"strings"

	"dualmark/dispatch"
	"dualmark/lane"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks cfg and resolves Kind. Every problem is reported, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	kind, err := dispatch.ParseBackend(c.Backend)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	} else {
		c.Kind = kind
	}

	if c.Yield != "" {
		if _, err := lane.ParseYield(c.Yield); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
		}
	}

	if c.Iterations < 0 {
		bad("iterations must not be negative, got %d", c.Iterations)
	}
	if c.Runs < 1 {
		bad("runs must be at least 1, got %d", c.Runs)
	}
	if c.SecondaryCore < 0 {
		bad("secondary_core must not be negative, got %d", c.SecondaryCore)
	}
	if c.WaitTimeout < 0 {
		bad("wait_timeout must not be negative")
	}
	if c.PollInterval < 0 {
		bad("poll_interval must not be negative")
	}
	if c.MinDuration < 0 {
		bad("min_duration must not be negative")
	}
	if c.History < 0 {
		bad("history must not be negative, got %d", c.History)
	}
	if c.Show < 0 {
		bad("show must not be negative, got %d", c.Show)
	}
	if (c.History > 0 || c.Show > 0) && c.DBPath == "" {
		bad("history and show need db_path")
	}
	switch c.TargetPointerBits {
	case 0, 32, 64:
	default:
		bad("target_pointer_bits must be 0, 32 or 64, got %d", c.TargetPointerBits)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		bad("log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		bad("log_format %q", c.LogFormat)
	}

	return errors.Join(errs...)
}

// YieldMode returns the configured yield mode, or "" for the backend default.
func (c *Config) YieldMode() lane.Yield {
	if c.Yield == "" {
		return ""
	}
	y, _ := lane.ParseYield(c.Yield)
	return y
}

// Package config loads the harness settings from defaults, a TOML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"time"

	"dualmark/constants"
	"dualmark/dispatch"
)

// Config holds every harness setting.
type Config struct {
	// Dispatcher
	Backend       string        `toml:"backend"`
	SecondaryCore int           `toml:"secondary_core"`
	WaitTimeout   time.Duration `toml:"wait_timeout"`
	PollInterval  time.Duration `toml:"poll_interval"`
	Yield         string        `toml:"yield"`

	// Workload
	Iterations  int           `toml:"iterations"`
	Runs        int           `toml:"runs"`
	Seed        uint64        `toml:"seed"`
	MinDuration time.Duration `toml:"min_duration"`

	// Platform
	StrictPlatform    bool `toml:"strict_platform"`
	TargetPointerBits int  `toml:"target_pointer_bits"`

	// Output
	DBPath    string `toml:"db_path"`
	JSON      bool   `toml:"json"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Archive queries. Either one replaces the benchmark run.
	History int   `toml:"-"`
	Show    int64 `toml:"-"`

	// ConfigFile is the file the TOML layer was read from, if any.
	ConfigFile string `toml:"-"`

	// Kind is Backend resolved by Load.
	Kind dispatch.Backend `toml:"-"`
}

// Default values.
const (
	DefaultBackend   = "default"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultFileName  = "dualmark.toml"
	EnvPrefix        = "DUALMARK_"
)

func setDefaults(cfg *Config) {
	cfg.Backend = DefaultBackend
	cfg.SecondaryCore = constants.SecondaryCore
	cfg.WaitTimeout = constants.DefaultWaitTimeout
	cfg.Iterations = constants.DefaultIterations
	cfg.Runs = constants.DefaultRuns
	cfg.Seed = constants.DefaultSeed
	cfg.MinDuration = constants.MinValidDuration
	cfg.DBPath = constants.DefaultDBPath
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

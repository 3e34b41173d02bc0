package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// loadFromEnv overrides cfg from DUALMARK_* variables. Unlike the flag layer
// a malformed value is an error rather than ignored, so a typo in a CI
// environment cannot silently fall back to a default.
func loadFromEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
		return nil
	}

	str("BACKEND", &cfg.Backend)
	str("YIELD", &cfg.Yield)
	str("DB_PATH", &cfg.DBPath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	if v, ok := os.LookupEnv(EnvPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return fmt.Errorf("config: %sSEED: %w", EnvPrefix, err)
		}
		cfg.Seed = seed
	}

	for _, err := range []error{
		num("ITERATIONS", &cfg.Iterations),
		num("RUNS", &cfg.Runs),
		num("SECONDARY_CORE", &cfg.SecondaryCore),
		num("TARGET_POINTER_BITS", &cfg.TargetPointerBits),
		dur("WAIT_TIMEOUT", &cfg.WaitTimeout),
		dur("POLL_INTERVAL", &cfg.PollInterval),
		dur("MIN_DURATION", &cfg.MinDuration),
		flag("JSON", &cfg.JSON),
		flag("STRICT_PLATFORM", &cfg.StrictPlatform),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

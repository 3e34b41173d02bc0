package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load builds a Config from, in increasing priority:
//  1. Defaults
//  2. The TOML file named by DUALMARK_CONFIG, or dualmark.toml in the working directory
//  3. DUALMARK_* environment variables
//  4. CLI flags
//
// A -config flag names the TOML file explicitly and wins over the first two
// lookups.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	path, explicit := findConfigFile(args)
	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: loading %s: %w", path, err)
			}
		} else {
			cfg.ConfigFile = path
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("config: parsing flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile reports the TOML path to read and whether the user named it.
func findConfigFile(args []string) (string, bool) {
	if p := configFlag(args); p != "" {
		return p, true
	}
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, true
	}
	return DefaultFileName, false
}

// configFlag pre-scans args for -config so the file layer can be applied
// before the remaining flags override it.
func configFlag(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a {
		case "-config", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		case "--":
			return ""
		}
		for _, prefix := range []string{"-config=", "--config="} {
			if len(a) > len(prefix) && a[:len(prefix)] == prefix {
				return a[len(prefix):]
			}
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

package config

import (
	"flag"
	"strconv"
)

// seedValue lets -seed accept hex as well as decimal.
type seedValue struct{ p *uint64 }

func (s seedValue) String() string {
	if s.p == nil {
		return "0"
	}
	return "0x" + strconv.FormatUint(*s.p, 16)
}

func (s seedValue) Set(v string) error {
	n, err := strconv.ParseUint(v, 0, 64)
	if err != nil {
		return err
	}
	*s.p = n
	return nil
}

// parseFlags binds every setting to fs and parses args over cfg.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("dualmark", flag.ContinueOnError)
	}

	// Dispatcher
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Dispatcher backend (busywait, polling, rendezvous, default)")
	fs.IntVar(&cfg.SecondaryCore, "secondary-core", cfg.SecondaryCore, "CPU the secondary lane is pinned to")
	fs.DurationVar(&cfg.WaitTimeout, "wait-timeout", cfg.WaitTimeout, "Bound on the completion wait (0 waits forever)")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Idle pacing of the polling task (0 polls every slice)")
	fs.StringVar(&cfg.Yield, "yield", cfg.Yield, "Primary wait strategy (spin, relax, gosched; empty for backend default)")

	// Workload
	fs.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Total iterations split across both lanes (0 calibrates)")
	fs.IntVar(&cfg.Runs, "runs", cfg.Runs, "Number of measured runs")
	fs.Var(seedValue{&cfg.Seed}, "seed", "Workload seed shared by both lanes")
	fs.DurationVar(&cfg.MinDuration, "min-duration", cfg.MinDuration, "Minimum total time for a valid result")

	// Platform
	fs.BoolVar(&cfg.StrictPlatform, "strict-platform", cfg.StrictPlatform, "Abort on platform width mismatches")
	fs.IntVar(&cfg.TargetPointerBits, "target-pointer-bits", cfg.TargetPointerBits, "Expected pointer width (0 for host)")

	// Output
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Result history database (empty disables)")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "Print the report as JSON")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")

	// Archive
	fs.IntVar(&cfg.History, "history", cfg.History, "List the N most recent archived reports and exit")
	fs.Int64Var(&cfg.Show, "show", cfg.Show, "Print the archived report with this id and exit")

	// Consumed by findConfigFile; bound here so Parse accepts it.
	var file string
	fs.StringVar(&file, "config", "", "TOML config file")

	return fs.Parse(args)
}

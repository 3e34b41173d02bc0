// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — cold-path diagnostics for the harness
//
// Purpose:
//   - Logs lifecycle events, configuration problems and lane timeouts
//   - Shares one leveled logger between main, harness, dispatcher and store
//
// Notes:
//   - Backed by charmbracelet/log; text for terminals, JSON for collectors
//   - Configure once at startup, before any lane is running
//
// ⚠️ Never invoke from Step, Signal or Wait. Use only around measured runs.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var current atomic.Pointer[log.Logger]

func init() {
	current.Store(newLogger(os.Stderr, log.InfoLevel, log.TextFormatter))
}

func newLogger(w io.Writer, level log.Level, formatter log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		Prefix:          "dualmark",
		ReportTimestamp: formatter != log.TextFormatter,
	})
}

// Configure replaces the shared logger. level is one of debug, info, warn,
// error; format is text, json or logfmt.
func Configure(w io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("debug: %w", err)
	}

	var formatter log.Formatter
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return fmt.Errorf("debug: unknown log format %q", format)
	}

	current.Store(newLogger(w, lvl, formatter))
	return nil
}

// Logger returns the shared logger.
func Logger() *log.Logger {
	return current.Load()
}

// DropError logs err under prefix at error level. A nil err logs the prefix
// alone as a warning, for tagged events that carry no error value.
func DropError(prefix string, err error) {
	if err != nil {
		Logger().Error(prefix, "err", err)
		return
	}
	Logger().Warn(prefix)
}

// DropMessage logs an informational event with optional key/value pairs.
func DropMessage(prefix, message string, keyvals ...any) {
	Logger().Info(message, append([]any{"stage", prefix}, keyvals...)...)
}

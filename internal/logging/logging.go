// Package logging builds the pslog loggers used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Levels lists the accepted --log-level values.
var Levels = []string{"debug", "info", "warn", "error"}

// ValidLevel reports whether level is one of Levels. Empty is accepted.
func ValidLevel(level string) bool {
	_, err := options(level)
	return err == nil
}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level string) (pslog.Logger, error) {
	opts, err := options(level)
	if err != nil {
		return nil, err
	}
	return pslog.NewWithOptions(w, opts), nil
}

// OpenFile opens path for appending, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func options(level string) (pslog.Options, error) {
	opts := pslog.Options{Mode: pslog.ModeConsole, NoColor: true}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "warn", "warning":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return pslog.Options{}, fmt.Errorf("unknown log level %q (want one of %s)", level, strings.Join(Levels, ", "))
	}
	return opts, nil
}

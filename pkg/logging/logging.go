// Package logging configures the process-wide slog default logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/cheapamd/camd/pkg/config"
)

// Options controls how the default logger is built.
type Options struct {
	// Debug lowers the level to slog.LevelDebug.
	Debug bool

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// Output defaults to stderr so command output on stdout stays
	// machine-parseable.
	Output io.Writer
}

// SetDefault installs the process default logger. CAMD_DEBUG=1 in the
// environment enables debug logging even when opts.Debug is false.
func SetDefault(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Debug || envDebug() {
		level = slog.LevelDebug
	}

	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}

	slog.SetDefault(slog.New(handler))
}

// SetDefaultStructuredLogger installs a JSON logger tagged with the
// service name and version on every record. Used by long-running
// server processes.
func SetDefaultStructuredLogger(name, version string) {
	level := slog.LevelInfo
	if envDebug() {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(
		slog.String("service", name),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}

func envDebug() bool {
	switch os.Getenv(config.EnvDebug) {
	case "", "0", "false":
		return false
	}
	return true
}

// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Output formats accepted by Setup.
const (
	FormatAuto   = "auto"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Setup installs the default slog logger. "json" writes machine
// readable lines to stdout, "pretty" writes colorized output to stderr,
// and "auto" picks pretty when stderr is a terminal.
func Setup(format string) {
	var handler slog.Handler
	switch format {
	case FormatPretty:
		handler = prettyHandler()
	case FormatJSON:
		handler = jsonHandler()
	default:
		if term.IsTerminal(int(os.Stderr.Fd())) {
			handler = prettyHandler()
		} else {
			handler = jsonHandler()
		}
	}
	slog.SetDefault(slog.New(handler))
}

func jsonHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

func prettyHandler() slog.Handler {
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	})
}

package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	Logger zerolog.Logger = zerolog.Nop()
)

func ParseLevel(inlevel string) zerolog.Level {
	switch strings.ToLower(inlevel) {
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// LogInit logs to stderr; stdout belongs to the menu.
func LogInit(inlevel string) {
	LogInitWriter(inlevel, os.Stderr)
}

func LogInitWriter(inlevel string, out io.Writer) {
	level := ParseLevel(inlevel)
	zerolog.SetGlobalLevel(level)
	Logger = zerolog.New(
		zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true},
	).With().Timestamp().Caller().Logger()

	Logger.Debug().Msgf("logging initialized at level %v", level)
}

// SetLogLevel changes the effective level without rebuilding Logger, so it is
// safe to call from the config watcher goroutine.
func SetLogLevel(inlevel string) {
	zerolog.SetGlobalLevel(ParseLevel(inlevel))
}

// Package logging provides structured logging for tripmap using zerolog.
// Terminals get human-readable console output, everything else gets JSON.
//
//	log := logging.Default()
//	log.Info().Str("collection", "expenses").Int("count", 12).Msg("Collection loaded")
//
//	ctx := logging.WithOperation(ctx, "sync.push")
//	logging.Ctx(ctx).Debug().Msg("Gathering payload")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	cfg := ConfigFromEnv(os.Getenv)
	defaultLogger = NewLoggerFromConfig(cfg)
	setComponentLevels(cfg.Components)
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default global logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewConsole creates a console logger for human-readable output.
func NewConsole() zerolog.Logger {
	return New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	})
}

// Component returns a child of the default logger tagged with a component
// name, at the level Configure set for that component.
func Component(name string) *zerolog.Logger {
	l := defaultLogger.With().Str("component", name).Logger()
	l = l.Level(componentLevel(name, defaultLogger.GetLevel()))
	return &l
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Err starts an error level event carrying err.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	logger *zerolog.Logger
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// New returns a JSON logger writing to w.
func New(w io.Writer, debug bool) *Logger {
	logger := zerolog.New(w).Level(level(debug)).With().Timestamp().Logger()
	return &Logger{logger: &logger}
}

// NewConsole returns a human readable logger on stderr tagged with tag.
func NewConsole(debug bool, tag string) *Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	logger := zerolog.New(output).Level(level(debug)).With().
		Str("s", tag).
		Timestamp().Logger()
	return &Logger{logger: &logger}
}

func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{logger: &logger}
}

// With creates a child logger with the field added to its context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend adds some additional context to the existing logger.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.logger.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }

// Since logs msg at debug level with the elapsed time from t.
func (l *Logger) Since(t time.Time, msg string) {
	l.logger.Debug().Dur("took", time.Since(t)).Msg(msg)
}

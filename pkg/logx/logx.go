// Package logx is the process-wide logger. It wraps zerolog behind a small
// leveled API so call sites stay terse.
package logx

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Fields are structured key/value pairs attached to a log entry.
type Fields map[string]any

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, true)
)

func newLogger(w io.Writer, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Configure replaces the output. Pretty selects the human-readable console
// format; otherwise entries are JSON lines.
func Configure(w io.Writer, pretty bool) {
	mu.Lock()
	defer mu.Unlock()
	level := logger.GetLevel()
	logger = newLogger(w, pretty).Level(level)
}

// SetLevel sets the minimum level that is emitted.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(toZerolog(level))
}

// ParseLevel maps "debug", "warn", "error" to their level; anything else is info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debug(msg string) { current().Debug().Msg(msg) }
func Debugf(format string, args ...any) { current().Debug().Msgf(format, args...) }
func Info(msg string) { current().Info().Msg(msg) }
func Infof(format string, args ...any) { current().Info().Msgf(format, args...) }
func Warn(msg string) { current().Warn().Msg(msg) }
func Warnf(format string, args ...any) { current().Warn().Msgf(format, args...) }
func Error(msg string) { current().Error().Msg(msg) }
func Errorf(format string, args ...any) { current().Error().Msgf(format, args...) }
func Fatalf(format string, args ...any) { current().Fatal().Msgf(format, args...) }

// Entry is a logger bound to a set of fields.
type Entry struct {
	fields Fields
}

// WithFields returns an entry that attaches fields to every message.
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// WithField is shorthand for a single-field entry.
func WithField(key string, value any) *Entry {
	return &Entry{fields: Fields{key: value}}
}

func (e *Entry) event(ev *zerolog.Event) *zerolog.Event {
	return ev.Fields(map[string]any(e.fields))
}

func (e *Entry) Debugf(format string, args ...any) { e.event(current().Debug()).Msgf(format, args...) }
func (e *Entry) Info(msg string) { e.event(current().Info()).Msg(msg) }
func (e *Entry) Infof(format string, args ...any) { e.event(current().Info()).Msgf(format, args...) }
func (e *Entry) Warn(msg string) { e.event(current().Warn()).Msg(msg) }
func (e *Entry) Warnf(format string, args ...any) { e.event(current().Warn()).Msgf(format, args...) }
func (e *Entry) Errorf(format string, args ...any) { e.event(current().Error()).Msgf(format, args...) }

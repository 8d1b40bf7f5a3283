// Package log provides the structured logger used by the dispatch and
// poolrouter packages. It wraps zerolog behind a small Logger interface
// so callers depend on a handful of leveled methods rather than zerolog
// itself.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the minimal structured logger surface the dispatcher and
// router need. It deliberately does not expose zerolog types so callers
// can swap in their own implementation.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)
	Info(...any)
	Infof(string, ...any)
	Warn(...any)
	Warnf(string, ...any)
	Error(...any)
	Errorf(string, ...any)
}

// DefaultLogger writes to stderr at info level and above.
var DefaultLogger Logger = &logger{underlying: zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()}

// DiscardLogger swallows every message; useful in tests.
var DiscardLogger Logger = NewLogger(io.Discard)

type logger struct {
	underlying zerolog.Logger
}

// NewLogger creates a Logger backed by zerolog, writing to w.
func NewLogger(w io.Writer) Logger {
	return &logger{underlying: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *logger) Debug(v ...any)                 { l.underlying.Debug().Msg(fmt.Sprint(v...)) }
func (l *logger) Debugf(format string, v ...any) { l.underlying.Debug().Msgf(format, v...) }
func (l *logger) Info(v ...any)                  { l.underlying.Info().Msg(fmt.Sprint(v...)) }
func (l *logger) Infof(format string, v ...any)  { l.underlying.Info().Msgf(format, v...) }
func (l *logger) Warn(v ...any)                  { l.underlying.Warn().Msg(fmt.Sprint(v...)) }
func (l *logger) Warnf(format string, v ...any)  { l.underlying.Warn().Msgf(format, v...) }
func (l *logger) Error(v ...any)                 { l.underlying.Error().Msg(fmt.Sprint(v...)) }
func (l *logger) Errorf(format string, v ...any) { l.underlying.Error().Msgf(format, v...) }

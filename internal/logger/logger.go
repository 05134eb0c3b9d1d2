// Package logger wraps zerolog.Logger with the constructors and
// context helpers used across calbot.
//
// Request handlers attach a child logger carrying the request's trace id to
// the context; downstream code retrieves it with FromContext.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so the full zerolog API is available on *Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds a JSON logger on stdout for the given role label
// (e.g. "server") at the given level name ("debug", "info", ...).
func NewLogger(role, level string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return New(os.Stdout, role, lvl), nil
}

// New builds a logger writing to w. Every entry carries "role", a timestamp
// and a "func" caller field with the fully-qualified function name.
func New(w io.Writer, role string, lvl zerolog.Level) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(w).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx. When none is attached
// zerolog hands back its default (disabled) logger, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

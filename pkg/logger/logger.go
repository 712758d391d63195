// Package logger wraps zerolog with a context-carrying API so request
// scoped fields (request id, user id, role) follow a request through the
// service and repo layers.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

type Logger struct {
	zl zerolog.Logger
}

// New builds the root logger. In dev mode it writes human-readable
// console output; otherwise structured JSON.
func New(service, env, level string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if env == "dev" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Str("env", env).
		Logger()

	return &Logger{zl: zl}
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) WithFields(fields map[string]any) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{zl: l.zl.With().Str("request_id", requestID).Logger()}
}

func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{zl: l.zl.With().Str("user_id", userID).Logger()}
}

func (l *Logger) WithActorRole(role string) *Logger {
	return &Logger{zl: l.zl.With().Str("actor_role", role).Logger()}
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Warn(msg string, err error) {
	evt := l.zl.Warn()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

func (l *Logger) Error(msg string, err error) {
	evt := l.zl.Error().Stack()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

func (l *Logger) Fatal(msg string, err error) {
	evt := l.zl.Fatal()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

// IntoContext stores the logger in ctx.
func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger, falling back to a
// no-op logger when none was seeded.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return NewNop()
}

// Package logging provides the zap-backed operation logger shared by the
// store server and the sync client.
package logging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

// Logger writes structured entries tagged with the operation that produced them
// and, when present, the request id carried by the context.
type Logger struct {
	zap *zap.Logger
}

// New builds a logger for the given environment. Production writes JSON,
// everything else writes the console encoding.
func New(env, level string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{zap: z}, nil
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{zap: z}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Zap exposes the underlying logger for libraries that want one.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// LogError logs an error with context
func (l *Logger) LogError(ctx context.Context, operation string, err error) {
	l.zap.Error("operation failed", l.fields(ctx, operation, zap.Error(err))...)
}

func (l *Logger) LogErrorf(ctx context.Context, operation string, format string, args ...any) {
	l.zap.Error(fmt.Sprintf(format, args...), l.fields(ctx, operation)...)
}

func (l *Logger) LogWarnf(ctx context.Context, operation string, format string, args ...any) {
	l.zap.Warn(fmt.Sprintf(format, args...), l.fields(ctx, operation)...)
}

func (l *Logger) LogInfof(ctx context.Context, operation string, format string, args ...any) {
	l.zap.Info(fmt.Sprintf(format, args...), l.fields(ctx, operation)...)
}

func (l *Logger) LogDebugf(ctx context.Context, operation string, format string, args ...any) {
	if !l.zap.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	l.zap.Debug(fmt.Sprintf(format, args...), l.fields(ctx, operation)...)
}

func (l *Logger) fields(ctx context.Context, operation string, extra ...zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, 2+len(extra))
	if rid := RequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	fields = append(fields, zap.String("operation", operation))
	return append(fields, extra...)
}

// WithRequestID stores a request id in ctx for later log entries.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

package log

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/omsctl/internal/errors"
	"github.com/felixgeelhaar/omsctl/internal/security"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:       config.Level.ToSlogLevel(),
		AddSource:   config.AddSource,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	default:
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	}

	l := slog.New(handler)
	if config.ServiceName != "" {
		l = l.With("service", config.ServiceName)
	}
	if config.ServiceVersion != "" {
		l = l.With("version", config.ServiceVersion)
	}

	return &Logger{
		slog:   l,
		config: config,
	}
}

// redactAttr keeps bearer tokens and credential fields out of log files
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString && security.ContainsSecret(a.Value.String()) {
		return slog.String(a.Key, security.Redact(a.Value.String()))
	}
	return a
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Nop discards everything. Used when no logger is injected.
func Nop() *Logger {
	return New(Config{Level: LevelError, Output: NewOutput(io.Discard)})
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithGroup returns a new Logger with a group name that prefixes all attributes
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{
		slog:   l.slog.WithGroup(name),
		config: l.config,
	}
}

// WithError adds error details to the logger.
// Coded errors contribute their code and cause.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With(errorAttrs(err)...)
}

func errorAttrs(err error) []any {
	var omsErr *errors.OMSError
	if !stderrors.As(err, &omsErr) {
		return []any{"error", err.Error()}
	}

	args := []any{
		"error", omsErr.Message,
		"error_code", string(omsErr.Code),
	}
	if omsErr.Cause != nil {
		args = append(args, "cause", omsErr.Cause.Error())
	}
	return args
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// InfoContext logs an info message with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// WarnContext logs a warning message with context
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.slog.WarnContext(ctx, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// ErrorContext logs an error message with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// LogError logs err with its code, suggestions and docs link when it is coded
func (l *Logger) LogError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	args := errorAttrs(err)
	var omsErr *errors.OMSError
	if stderrors.As(err, &omsErr) {
		if len(omsErr.Suggestions) > 0 {
			args = append(args, "suggestions", omsErr.Suggestions)
		}
		if omsErr.DocsURL != "" {
			args = append(args, "docs_url", omsErr.DocsURL)
		}
	}
	l.slog.ErrorContext(ctx, msg, args...)
}

// Enabled returns whether the logger is enabled for the given level
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}

// Slog exposes the underlying slog.Logger
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Config returns the logger configuration
func (l *Logger) Config() Config {
	return l.config
}

// Close flushes and closes a file-backed output
func (l *Logger) Close() error {
	return l.config.Output.Close()
}

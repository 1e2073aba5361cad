package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	// traceLevelValue is slog.Level for TRACE level (below Debug which is -4)
	traceLevelValue = slog.Level(-8)

	// defaultAttrCapacity covers the module attribute plus a typical call's fields
	defaultAttrCapacity = 8

	consoleTimeFormat = "02.01.2006 15:04:05"
)

// SlogLogger implements Logger interface using Go's standard log/slog
type SlogLogger struct {
	handler  slog.Handler
	level    slog.Level
	module   string
	timezone *time.Location
	fields   []Field
}

// NewSlogLogger creates a new slog-based logger with JSON output
func NewSlogLogger(writer io.Writer, level LogLevel, timezone *time.Location) *SlogLogger {
	if writer == nil {
		writer = os.Stdout
	}
	if timezone == nil {
		timezone = time.UTC
	}

	slogLevel := parseSlogLevel(level)
	opts := &slog.HandlerOptions{
		Level:       slogLevel,
		ReplaceAttr: replaceAttr(timezone, time.RFC3339),
	}

	return &SlogLogger{
		handler:  slog.NewJSONHandler(writer, opts),
		level:    slogLevel,
		timezone: timezone,
	}
}

// NewConsoleLogger creates a logger with human-readable text output, used
// when the CLI runs attached to a terminal.
func NewConsoleLogger(writer io.Writer, level LogLevel, timezone *time.Location) *SlogLogger {
	if writer == nil {
		writer = os.Stderr
	}
	if timezone == nil {
		timezone = time.Local
	}

	slogLevel := parseSlogLevel(level)
	opts := &slog.HandlerOptions{
		Level:       slogLevel,
		ReplaceAttr: replaceAttr(timezone, consoleTimeFormat),
	}

	return &SlogLogger{
		handler:  slog.NewTextHandler(writer, opts),
		level:    slogLevel,
		timezone: timezone,
	}
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *SlogLogger {
	return NewSlogLogger(io.Discard, LogLevelError, time.UTC)
}

// replaceAttr renders timestamps in the configured zone and names the
// custom trace level.
func replaceAttr(tz *time.Location, layout string) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.TimeKey:
			if t, ok := a.Value.Any().(time.Time); ok {
				return slog.String(slog.TimeKey, t.In(tz).Format(layout))
			}
		case slog.LevelKey:
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= traceLevelValue {
				return slog.String(slog.LevelKey, "TRACE")
			}
		}
		return a
	}
}

// Module returns a logger scoped to a specific module
func (l *SlogLogger) Module(name string) Logger {
	if l == nil {
		return nil
	}

	moduleName := name
	if l.module != "" {
		moduleName = l.module + "." + name
	}

	return &SlogLogger{
		handler:  l.handler,
		level:    l.level,
		module:   moduleName,
		timezone: l.timezone,
		fields:   l.fields,
	}
}

// Trace logs a trace message (most verbose level)
func (l *SlogLogger) Trace(msg string, fields ...Field) {
	if l == nil || l.level > traceLevelValue {
		return
	}
	l.log(traceLevelValue, msg, fields...)
}

// Debug logs a debug message
func (l *SlogLogger) Debug(msg string, fields ...Field) {
	if l == nil || l.level > slog.LevelDebug {
		return
	}
	l.log(slog.LevelDebug, msg, fields...)
}

// Info logs an info message
func (l *SlogLogger) Info(msg string, fields ...Field) {
	if l == nil || l.level > slog.LevelInfo {
		return
	}
	l.log(slog.LevelInfo, msg, fields...)
}

// Warn logs a warning message
func (l *SlogLogger) Warn(msg string, fields ...Field) {
	if l == nil || l.level > slog.LevelWarn {
		return
	}
	l.log(slog.LevelWarn, msg, fields...)
}

// Error logs an error message
func (l *SlogLogger) Error(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.log(slog.LevelError, msg, fields...)
}

// Log logs a message with explicit level
func (l *SlogLogger) Log(level LogLevel, msg string, fields ...Field) {
	if l == nil {
		return
	}
	slogLevel := parseSlogLevel(level)
	if l.level > slogLevel {
		return
	}
	l.log(slogLevel, msg, fields...)
}

// With returns a new logger with accumulated fields
func (l *SlogLogger) With(fields ...Field) Logger {
	if l == nil {
		return nil
	}

	return &SlogLogger{
		handler:  l.handler,
		level:    l.level,
		module:   l.module,
		timezone: l.timezone,
		fields:   slices.Concat(l.fields, fields),
	}
}

// WithContext returns a logger carrying the context's trace ID, if any
func (l *SlogLogger) WithContext(ctx context.Context) Logger {
	if l == nil {
		return nil
	}
	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		return l
	}
	return l.With(String("trace_id", traceID))
}

// Flush is a no-op; slog handlers write synchronously.
func (l *SlogLogger) Flush() error {
	return nil
}

var attrPool = sync.Pool{
	New: func() any {
		s := make([]slog.Attr, 0, defaultAttrCapacity)
		return &s
	},
}

// log is the internal logging method
func (l *SlogLogger) log(level slog.Level, msg string, fields ...Field) {
	attrsPtr, ok := attrPool.Get().(*[]slog.Attr)
	if !ok {
		s := make([]slog.Attr, 0, defaultAttrCapacity)
		attrsPtr = &s
	}
	attrs := *attrsPtr

	if l.module != "" {
		attrs = append(attrs, slog.String("module", l.module))
	}
	for _, f := range l.fields {
		attrs = append(attrs, fieldToAttr(f))
	}
	for _, f := range fields {
		attrs = append(attrs, fieldToAttr(f))
	}

	slog.New(l.handler).LogAttrs(context.Background(), level, msg, attrs...)

	*attrsPtr = attrs[:0]
	attrPool.Put(attrsPtr)
}

// fieldToAttr converts Field to slog.Attr
func fieldToAttr(f Field) slog.Attr {
	switch v := f.Value.(type) {
	case string:
		return slog.String(f.Key, v)
	case int:
		return slog.Int(f.Key, v)
	case int64:
		return slog.Int64(f.Key, v)
	case uint64:
		return slog.Uint64(f.Key, v)
	case float64:
		return slog.Float64(f.Key, v)
	case bool:
		return slog.Bool(f.Key, v)
	case time.Time:
		return slog.Time(f.Key, v)
	case time.Duration:
		return slog.Duration(f.Key, v)
	default:
		return slog.Any(f.Key, v)
	}
}

// ParseLevel converts a configuration string to a LogLevel, defaulting to info.
func ParseLevel(level string) LogLevel {
	switch LogLevel(strings.ToLower(strings.TrimSpace(level))) {
	case LogLevelTrace:
		return LogLevelTrace
	case LogLevelDebug:
		return LogLevelDebug
	case LogLevelWarn, "warning":
		return LogLevelWarn
	case LogLevelError:
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// parseSlogLevel converts LogLevel to slog.Level
func parseSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelTrace:
		return traceLevelValue
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
)

// Logger represents context aware structured logger
type Logger interface {
	IsDebugEnabled() bool
	Debugc(ctx context.Context, msg string, args ...any)
	Infoc(ctx context.Context, msg string, args ...any)
	Warnc(ctx context.Context, msg string, args ...any)
	Errorc(ctx context.Context, msg string, args ...any)
	Debugs(ctx context.Context, msg string, attrs ...slog.Attr)
}

type slogger struct {
	logger *slog.Logger
	level  slog.Level
}

// ParseLevel returns slog level for supplied name, unknown names are INFO
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New creates a JSON structured logger and sets it as the slog default
func New(level string, dest io.Writer) Logger {
	if dest == nil {
		dest = os.Stdout
	}
	logLevel := ParseLevel(level)
	handler := slog.NewJSONHandler(dest, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	})
	sl := slog.New(handler)
	slog.SetDefault(sl)
	return &slogger{logger: sl, level: logLevel}
}

func (s *slogger) IsDebugEnabled() bool {
	return s.level <= slog.LevelDebug
}

func (s *slogger) enabled(level slog.Level) bool {
	return s.level <= level
}

// callerInfo returns function, file and line of the logging call site
func (s *slogger) callerInfo() []any {
	callers := make([]uintptr, 1)
	if runtime.Callers(4, callers) == 0 {
		return nil
	}
	frame, _ := runtime.CallersFrames(callers).Next()
	return []any{"function", frame.Function, "file", frame.File, "line", frame.Line}
}

func (s *slogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if !s.enabled(level) {
		return
	}
	values := s.callerInfo()
	values = append(values, contextValues(ctx)...)
	values = append(values, args...)
	if ctx == nil {
		ctx = context.Background()
	}
	s.logger.Log(ctx, level, msg, values...)
}

func (s *slogger) Debugc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *slogger) Infoc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *slogger) Warnc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *slogger) Errorc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

// Debugs logs attributes with sensitive values redacted
func (s *slogger) Debugs(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.log(ctx, slog.LevelDebug, msg, redactAttrs(attrs...))
}

type nop struct{}

func (nop) IsDebugEnabled() bool { return false }
func (nop) Debugc(ctx context.Context, msg string, args ...any) {}
func (nop) Infoc(ctx context.Context, msg string, args ...any) {}
func (nop) Warnc(ctx context.Context, msg string, args ...any) {}
func (nop) Errorc(ctx context.Context, msg string, args ...any) {}
func (nop) Debugs(ctx context.Context, msg string, attrs ...slog.Attr) {}

// Nop returns a logger discarding all entries
func Nop() Logger {
	return nop{}
}

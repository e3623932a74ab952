// Package logutil constructs slog loggers used by the console utility.
package logutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"
)

const LevelTrace slog.Level = -8

// NewLogger creates text logger writing to w. Source file names are trimmed to base names.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				if attr.Value.Any().(slog.Level) == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return attr
		},
	}))
}

// Level returns logging level for debug flag and verbosity: INFO, DEBUG, or TRACE.
func Level(debug bool, trace bool) slog.Level {
	switch {
	case trace:
		return LevelTrace
	case debug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Trace logs msg at TRACE level using logger.
func Trace(logger *slog.Logger, msg string, args ...any) {
	trace(context.Background(), logger, msg, args)
}

// TraceContext is like Trace, but passes ctx to the handler.
func TraceContext(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	trace(ctx, logger, msg, args)
}

// trace must be called directly by exported functions, the record source is their caller.
func trace(ctx context.Context, logger *slog.Logger, msg string, args []any) {
	if !logger.Enabled(ctx, LevelTrace) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), LevelTrace, msg, pcs[0])
	record.Add(args...)
	_ = logger.Handler().Handle(ctx, record)
}

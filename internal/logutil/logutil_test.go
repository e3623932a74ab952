package logutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ava12/lagrum/internal/test"
)

func TestLevels(t *testing.T) {
	test.Expect(t, Level(false, false) == slog.LevelInfo, slog.LevelInfo, Level(false, false))
	test.Expect(t, Level(true, false) == slog.LevelDebug, slog.LevelDebug, Level(true, false))
	test.Expect(t, Level(false, true) == LevelTrace, LevelTrace, Level(false, true))
	test.Expect(t, Level(true, true) == LevelTrace, LevelTrace, Level(true, true))
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelTrace)
	Trace(logger, "span", "category", "word")
	out := buf.String()
	test.Assert(t, strings.Contains(out, "level=TRACE"), "no TRACE level in %q", out)
	test.Assert(t, strings.Contains(out, "source=logutil_test.go:"), "no trimmed source in %q", out)
	test.Assert(t, strings.Contains(out, "category=word"), "no attribute in %q", out)
}

func TestTraceDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug)
	Trace(logger, "span")
	logger.Debug("document", "name", "a.txt")
	out := buf.String()
	test.Assert(t, !strings.Contains(out, "TRACE"), "unexpected TRACE record in %q", out)
	test.Assert(t, strings.Contains(out, "level=DEBUG"), "no DEBUG record in %q", out)
}

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	logger = NewComponentLogger(logger, "matcher")
	logger.Info("scored batch", Args(Int(FieldBatchID, 3), Float64("seconds", 1.5))...)

	line := buf.String()
	if !strings.Contains(line, "INFO matcher: scored batch") {
		t.Errorf("missing component prefix: %q", line)
	}
	if !strings.Contains(line, "batch_id=3") || !strings.Contains(line, "seconds=1.5") {
		t.Errorf("missing attrs: %q", line)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn missing: %q", out)
	}
}

func TestWithContextCarriesIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithBatchID(ctx, 7)
	ctx = WithWorkerID(ctx, 2)
	WithContext(ctx, logger).Info("working")

	line := buf.String()
	for _, want := range []string{"run_id=run-1", "batch_id=7", "worker_id=2"} {
		if !strings.Contains(line, want) {
			t.Errorf("missing %s in %q", want, line)
		}
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Error("unknown level should default to info")
	}
	if parseLevel("DEBUG") != slog.LevelDebug {
		t.Error("level parsing should be case-insensitive")
	}
}

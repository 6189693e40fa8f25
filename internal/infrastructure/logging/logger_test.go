package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected attribute in output, got %q", out)
	}
}

func TestContextEnrichment(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelDebug,
		Format: FormatJSON,
		Output: &buf,
	})

	ctx := WithCorrelationID(context.Background(), "rebuild-123")
	ctx = WithSource(ctx, "openrouter")
	ctx = WithModel(ctx, "gpt-5.2")

	logger.InfoContext(ctx, "resolving")

	out := buf.String()
	for _, want := range []string{
		`"correlation_id":"rebuild-123"`,
		`"source":"openrouter"`,
		`"model":"gpt-5.2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %q", want, out)
		}
	}
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc")
	if got := CorrelationID(ctx); got != "abc" {
		t.Errorf("CorrelationID() = %q, want abc", got)
	}
	if got := CorrelationID(context.Background()); got != "" {
		t.Errorf("CorrelationID() on empty context = %q, want empty", got)
	}
}

func TestDomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelDebug,
		Format: FormatJSON,
		Output: &buf,
	})
	ctx := context.Background()

	LogRebuildStart(ctx, logger, "litellm")
	LogRebuildSuperseded(ctx, logger, "litellm")
	LogResolveMiss(ctx, logger, "mystery-model")

	out := buf.String()
	if !strings.Contains(out, "catalog rebuild started") {
		t.Error("rebuild start message missing")
	}
	if !strings.Contains(out, "catalog rebuild superseded") {
		t.Error("superseded message missing")
	}
	if !strings.Contains(out, "mystery-model") {
		t.Error("resolve miss model missing")
	}
}

package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithBuildID(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-123")

	lc := GetContext(ctx)
	if lc.BuildID != "build-123" {
		t.Errorf("expected build-123, got %s", lc.BuildID)
	}
}

func TestWithStage(t *testing.T) {
	ctx := WithStage(context.Background(), "discover")

	lc := GetContext(ctx)
	if lc.Stage != "discover" {
		t.Errorf("expected discover, got %s", lc.Stage)
	}
}

func TestContextChaining(t *testing.T) {
	ctx := WithBuildID(context.Background(), "b1")
	ctx = WithStage(ctx, "discover")
	ctx = WithStage(ctx, "render")

	lc := GetContext(ctx)
	if lc.BuildID != "b1" || lc.Stage != "render" {
		t.Errorf("unexpected context %+v", lc)
	}
}

func TestEmptyContext(t *testing.T) {
	lc := GetContext(context.Background())
	if lc.BuildID != "" || lc.Stage != "" {
		t.Errorf("expected empty context, got %+v", lc)
	}
}

func TestInfoContext(t *testing.T) {
	buf := captureDefault(t)

	ctx := WithStage(WithBuildID(context.Background(), "build-1"), "render")
	InfoContext(ctx, "test message", slog.String("extra", "value"))

	output := buf.String()
	for _, want := range []string{`"build_id":"build-1"`, `"stage":"render"`, `"extra":"value"`, "test message"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in log output: %s", want, output)
		}
	}
}

func TestLevels(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithBuildID(context.Background(), "b")

	DebugContext(ctx, "d")
	WarnContext(ctx, "w")
	ErrorContext(ctx, "e")

	output := buf.String()
	for _, want := range []string{`"level":"DEBUG"`, `"level":"WARN"`, `"level":"ERROR"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in log output: %s", want, output)
		}
	}
}

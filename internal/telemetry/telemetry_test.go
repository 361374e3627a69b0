package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("dropped")
	logger.Warn("kept", "stage", "search")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected exactly one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "kept" || rec["stage"] != "search" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestInitLoggerCreatesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closer, err := InitLogger(LoggerConfig{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte(`"msg":"hello"`)) {
		t.Fatalf("log file missing record: %s", data)
	}
}

func TestInitTelemetryExportsSpans(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p, err := InitTelemetry(ctx, dir)
	if err != nil {
		t.Fatalf("init telemetry: %v", err)
	}
	_, span := p.Tracer.Start(ctx, "turn")
	span.End()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "searchchat_traces.log"))
	if err != nil {
		t.Fatalf("read traces: %v", err)
	}
	if !bytes.Contains(data, []byte(`"Name": "turn"`)) {
		t.Fatalf("trace file missing span: %s", data)
	}
}

func TestNoopShutdown(t *testing.T) {
	if err := Noop().Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

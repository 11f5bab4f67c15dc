package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newBufferLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	l := New(&Config{Level: level, Format: "json", Writer: buf}, "test")
	return l, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line, err := buf.ReadBytes('\n')
	if err != nil {
		t.Fatalf("expected a log line, got %q: %v", buf.String(), err)
	}
	var m map[string]any
	if err := json.Unmarshal(line, &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json", Output: "stdout"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	if NewFromEnv("env-svc") == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded")
	l.WithStream("x").Error("also discarded")
}

func TestInfo_WritesFields(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.Info("batch drained", Fields(FieldBatchID, "b-1", FieldCount, 3))

	m := decodeLine(t, buf)
	if m["message"] != "batch drained" {
		t.Errorf("expected message, got %v", m["message"])
	}
	if m[FieldBatchID] != "b-1" {
		t.Errorf("expected batch_id=b-1, got %v", m[FieldBatchID])
	}
	if m[FieldCount] != float64(3) {
		t.Errorf("expected count=3, got %v", m[FieldCount])
	}
}

func TestDebug_FilteredAtInfo(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered, got %q", buf.String())
	}
}

func TestWithStreamAndComponent(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithComponent("source").WithStream("inbox").Warn("overflow")

	m := decodeLine(t, buf)
	if m[FieldComponent] != "source" {
		t.Errorf("expected component=source, got %v", m[FieldComponent])
	}
	if m[FieldStream] != "inbox" {
		t.Errorf("expected stream=inbox, got %v", m[FieldStream])
	}
	if m["level"] != "warn" {
		t.Errorf("expected level=warn, got %v", m["level"])
	}
}

func TestWithError(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, buf)
	if m[FieldError] != "boom" {
		t.Errorf("expected error=boom, got %v", m[FieldError])
	}
}

func TestWithContext(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	ctx := ContextWithRunID(context.Background(), "run-42")
	ctx = ContextWithTrace(ctx, "trace-1", "span-1")

	l.WithContext(ctx).Info("run finished")
	m := decodeLine(t, buf)
	for k, want := range map[string]string{FieldRunID: "run-42", FieldTraceID: "trace-1", FieldSpanID: "span-1"} {
		if m[k] != want {
			t.Errorf("expected %s=%s, got %v", k, want, m[k])
		}
	}
	if RunIDFromContext(ctx) != "run-42" {
		t.Errorf("expected run id from context")
	}
}

func TestWithContext_Empty(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithContext(context.Background()).Info("plain")
	m := decodeLine(t, buf)
	if _, ok := m[FieldRunID]; ok {
		t.Error("expected no run_id without context value")
	}
	if RunIDFromContext(context.Background()) != "" {
		t.Error("expected empty run id")
	}
}

func TestWithFields(t *testing.T) {
	l, buf := newBufferLogger(t, "info")
	l.WithFields(map[string]interface{}{FieldPath: "/tmp/a"}).Info("listed")
	m := decodeLine(t, buf)
	if m[FieldPath] != "/tmp/a" {
		t.Errorf("expected path, got %v", m[FieldPath])
	}
}

func TestConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "info", Format: "console", NoColor: true, Writer: buf}, "seqdemo")
	l.Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[SEQ][INF]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestInitAndGlobal(t *testing.T) {
	prev := globalLogger
	defer SetGlobalLogger(prev)

	Init(Config{Level: "warn", Format: "json"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger after Init")
	}
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger to be created")
	}
	Info("package-level")
	WithComponent("x").Debug("package-level")
	_ = WithContext(context.Background())
	_ = GetLoggerZ()
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled")
	}

	custom := Config{Level: "debug", Format: "json"}
	custom.ApplyDefaults()
	if custom.Level != "debug" || custom.Format != "json" {
		t.Errorf("defaults should not override set fields: %+v", custom)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"pretty", Config{Level: "debug", Format: "pretty", Output: "stderr"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
		{"writer overrides output", Config{Level: "info", Format: "json", Output: "file", Writer: &bytes.Buffer{}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewNop()
	Register("registered", l)
	if Get("registered") != l {
		t.Error("expected registered logger")
	}
	if Get("unregistered-component") == nil {
		t.Error("expected fallback logger")
	}
	RegisterDefaults("source", "stream")
	if Get("source") == nil {
		t.Error("expected default-registered logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields(FieldStream, "s", FieldPulled, 10, 42, "ignored", "dangling")
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %v", m)
	}
	if m[FieldPulled] != 10 {
		t.Errorf("expected pulled=10, got %v", m[FieldPulled])
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("inbox", errors.New("x"))
	if m[FieldStream] != "inbox" || m[FieldError] != "x" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestRunFields(t *testing.T) {
	m := RunFields("inbox", 7, 1500*time.Millisecond)
	if m[FieldPulled] != int64(7) || m[FieldDuration] != int64(1500) {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestMergeWithError(t *testing.T) {
	m := MergeWithError(nil, errors.New("e"))
	if m[FieldError] != "e" {
		t.Errorf("expected error field, got %v", m)
	}
	existing := map[string]interface{}{FieldStream: "s"}
	MergeWithError(existing, errors.New("e2"))
	if existing[FieldStream] != "s" || existing[FieldError] != "e2" {
		t.Errorf("expected merge, got %v", existing)
	}
}

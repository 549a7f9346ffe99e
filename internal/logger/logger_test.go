package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		" warn ":  LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStandardLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewStandardLogger(WithOutput(&buf), WithLevel(LevelWarn))

	log.Info("scanning %d devices", 2)
	log.Warn("dfu-util exited with %d", 74)

	out := buf.String()
	if strings.Contains(out, "scanning") {
		t.Fatalf("info entry should be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] dfu-util exited with 74") {
		t.Fatalf("missing warn entry, got %q", out)
	}
}

func TestStandardLoggerAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewStandardLogger(
		WithOutput(&buf),
		WithFormatter(&TextFormatter{DisableTimestamp: true}),
	)

	ctx := ContextWithTrace(context.Background(), TraceContext{SessionID: "abc"})
	ctx = WithDevice(ctx, "/dev/ttyACM0")

	log.With(String("component", "menu")).InfoContext(ctx, "entering bootloader", Duration("settle", 2*time.Second))

	want := "[INFO] entering bootloader component=menu session=abc device=/dev/ttyACM0 settle=2s\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	f := &JSONFormatter{}
	data, err := f.Format(&Entry{
		Time:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   LevelError,
		Message: "build step failed",
		Fields:  []Field{Int("exit_code", 2), String("step", "compile")},
	})
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", data, err)
	}
	if decoded["level"] != "ERROR" || decoded["msg"] != "build step failed" || decoded["step"] != "compile" {
		t.Fatalf("unexpected JSON payload: %v", decoded)
	}
	if decoded["exit_code"] != float64(2) {
		t.Fatalf("exit_code = %v", decoded["exit_code"])
	}
}

func TestMockLoggerRecordsTrace(t *testing.T) {
	log := NewMockLogger()
	ctx := ContextWithTrace(context.Background(), TraceContext{SessionID: "s1", Device: "dev"})

	log.WarnContext(ctx, "settle wait skipped")

	if !log.HasEntry(LevelWarn, "settle wait skipped") {
		t.Fatalf("expected warn entry")
	}
	if !log.HasField("session", "s1") || !log.HasField("device", "dev") {
		t.Fatalf("expected trace fields, got %+v", log.GetEntries())
	}
}

func TestSpinnerProgressStop(t *testing.T) {
	var buf bytes.Buffer
	p := NewSpinnerProgress(&buf)
	p.Start("waiting")
	p.Stop("done")
	p.Stop("done")

	if !strings.HasSuffix(buf.String(), "✓ done\n") {
		t.Fatalf("unexpected spinner output %q", buf.String())
	}
}

package logging

import (
	"context"
	stderrors "errors"
	"testing"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
)

func fieldValue(fields []logger.Field, key string) (interface{}, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func TestFieldsSkipsReservedMetadata(t *testing.T) {
	appErr := apperrors.BootloaderError(apperrors.CodeBootloaderEntry, "bootloader entry failed", stderrors.New("no such device")).
		WithOperation("bootloader.enter").
		WithField("device", "/dev/ttyACM0").
		WithField("error_code", "spoofed")

	fields := Fields(appErr)

	if v, _ := fieldValue(fields, "error_code"); v != apperrors.CodeBootloaderEntry {
		t.Fatalf("error_code = %v, want %s", v, apperrors.CodeBootloaderEntry)
	}
	if v, _ := fieldValue(fields, "device"); v != "/dev/ttyACM0" {
		t.Fatalf("device = %v", v)
	}
	if v, _ := fieldValue(fields, "recoverable"); v != true {
		t.Fatalf("recoverable = %v", v)
	}
	count := 0
	for _, f := range fields {
		if f.Key == "error_code" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single error_code field, got %d", count)
	}
}

func TestErrorAndWarnRouteByLevel(t *testing.T) {
	log := logger.NewMockLogger()
	ctx := context.Background()

	Error(ctx, log, "startup failed", apperrors.ConfigError(apperrors.CodeToolDirMissing, "missing", nil))
	Warn(ctx, log, "query failed", stderrors.New("dfu-util: not found"))

	if !log.HasEntry(logger.LevelError, "startup failed") {
		t.Fatalf("expected error entry")
	}
	if !log.HasEntry(logger.LevelWarn, "query failed") {
		t.Fatalf("expected warn entry")
	}
	entries := log.GetEntries()
	if v, _ := fieldValue(entries[1].Fields, "error"); v != "dfu-util: not found" {
		t.Fatalf("plain error field = %v", v)
	}
}

package flasher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
	"KFlash/internal/system"
)

func testConfig(t *testing.T) *system.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := system.DefaultConfig()
	cfg.KlipperDir = dir
	cfg.ScriptsDir = ""
	cfg.ArtifactPath = ""
	cfg.BuildConfig = ""
	return cfg.Normalize()
}

func TestValidatorPasses(t *testing.T) {
	v := NewStartupValidator(testConfig(t), logger.NewMockLogger())
	v.isTerminal = func() bool { return true }

	if err := v.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidatorMissingScriptsDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.ScriptsDir = filepath.Join(cfg.KlipperDir, "absent")
	v := NewStartupValidator(cfg, logger.NewMockLogger())
	v.isTerminal = func() bool { return true }

	err := v.Validate()
	if !apperrors.HasCode(err, apperrors.CodeToolDirMissing) {
		t.Fatalf("expected missing directory error, got %v", err)
	}
	appErr, _ := apperrors.As(err)
	if appErr.Recoverable {
		t.Fatal("startup errors must not be recoverable")
	}
	if !strings.Contains(appErr.Message, "Ensure Klipper is installed correctly") {
		t.Fatalf("message = %q", appErr.Message)
	}
}

func TestValidatorRequiresTerminal(t *testing.T) {
	v := NewStartupValidator(testConfig(t), logger.NewMockLogger())
	v.isTerminal = func() bool { return false }

	if err := v.Validate(); !apperrors.HasCode(err, apperrors.CodeNoTerminal) {
		t.Fatalf("expected terminal error, got %v", err)
	}
}

func TestNewLoggerJSONFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogFormat = "json"
	cfg.LogLevel = "info"
	cfg.LogFile = filepath.Join(t.TempDir(), "kflash.log")

	log, closeFn, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Debug("hidden")
	log.Info("visible %d", 1)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %q", data)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["msg"] != "visible 1" {
		t.Fatalf("msg = %v", entry["msg"])
	}
}

func TestNewLoggerRejectsBadSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "loud"
	if _, _, err := NewLogger(cfg); !apperrors.HasCode(err, apperrors.CodeInvalidSetting) {
		t.Fatalf("expected invalid level error, got %v", err)
	}

	cfg.LogLevel = "warn"
	cfg.LogFormat = "xml"
	if _, _, err := NewLogger(cfg); !apperrors.HasCode(err, apperrors.CodeInvalidSetting) {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}

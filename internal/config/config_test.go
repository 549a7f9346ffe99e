package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "KFlash/internal/errors"

	"github.com/spf13/pflag"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kflash.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	loaded, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.File != "" {
		t.Fatalf("unexpected config file %q", loaded.File)
	}

	cfg := loaded.Config
	if cfg.KlipperDir != "/home/pi/klipper" || cfg.ScriptsDir != "/home/pi/klipper/scripts" {
		t.Fatalf("unexpected klipper paths: %+v", cfg)
	}
	if cfg.ArtifactPath != "/home/pi/klipper/out/klipper.bin" || cfg.BuildConfig != "/home/pi/klipper/.config" {
		t.Fatalf("unexpected derived paths: %+v", cfg)
	}
	if cfg.SettleDelay != 2*time.Second || cfg.ResultPause != 2*time.Second {
		t.Fatalf("unexpected delays: %v %v", cfg.SettleDelay, cfg.ResultPause)
	}
	if cfg.LogLevel != "warn" || cfg.DeviceSource != "byid" || cfg.Driver != "script" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
klipper:
  dir: /opt/klipper
devices:
  source: PORTS
bootloader:
  settle: 5s
  pause: 500ms
log:
  level: debug
`)

	loaded, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.File != path {
		t.Fatalf("File = %q, want %q", loaded.File, path)
	}

	cfg := loaded.Config
	if cfg.ScriptsDir != "/opt/klipper/scripts" || cfg.BuildConfig != "/opt/klipper/.config" {
		t.Fatalf("paths not derived from klipper.dir: %+v", cfg)
	}
	if cfg.DeviceSource != "ports" {
		t.Fatalf("DeviceSource = %q", cfg.DeviceSource)
	}
	if cfg.SettleDelay != 5*time.Second || cfg.ResultPause != 500*time.Millisecond {
		t.Fatalf("delays = %v %v", cfg.SettleDelay, cfg.ResultPause)
	}
	if cfg.LogLevel != "debug" || cfg.Driver != "script" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit file")
	}
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Category != apperrors.ErrCategoryConfig {
		t.Fatalf("expected CONFIG error, got %v", err)
	}
	if !apperrors.HasCode(err, apperrors.CodeFileNotFound) {
		t.Fatalf("unexpected code: %v", err)
	}
}

func TestLoadBrokenFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "klipper: [dir\n")

	if _, err := Load(nil, path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "bootloader:\n  driver: script\n")
	t.Setenv("KFLASH_BOOTLOADER_DRIVER", "serial")
	t.Setenv("KFLASH_KLIPPER_SCRIPTS_DIR", "/srv/scripts")

	loaded, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Config.Driver != "serial" {
		t.Fatalf("Driver = %q, want serial", loaded.Config.Driver)
	}
	if loaded.Config.ScriptsDir != "/srv/scripts" {
		t.Fatalf("ScriptsDir = %q", loaded.Config.ScriptsDir)
	}
}

func TestFlagOverridesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("KFLASH_KLIPPER_DIR", "/from/env")

	flags := pflag.NewFlagSet("kflash", pflag.ContinueOnError)
	RegisterFlags(flags)
	if err := flags.Parse([]string{"--klipper-dir", "/from/flag"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	loaded, err := Load(flags, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Config.KlipperDir != "/from/flag" {
		t.Fatalf("KlipperDir = %q, want /from/flag", loaded.Config.KlipperDir)
	}
	if loaded.Config.SerialDir != "/dev/serial/by-id" {
		t.Fatalf("unset flag replaced default: %q", loaded.Config.SerialDir)
	}
}

func TestDumpCanBeLoadedBack(t *testing.T) {
	isolate(t)

	loaded, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loaded.Config.SettleDelay = 3 * time.Second
	loaded.Config.LogFile = "/var/log/kflash.log"

	out, err := Dump(loaded.Config)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	text := string(out)
	for _, want := range []string{"scripts_dir: /home/pi/klipper/scripts", "settle: 3s", "file: /var/log/kflash.log"} {
		if !strings.Contains(text, want) {
			t.Fatalf("dump missing %q:\n%s", want, text)
		}
	}

	reloaded, err := Load(nil, writeFile(t, text))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *reloaded.Config != *loaded.Config {
		t.Fatalf("reloaded config differs:\n got %+v\nwant %+v", reloaded.Config, loaded.Config)
	}
}

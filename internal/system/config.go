package system

import (
	"os"
	"path/filepath"
	"time"

	apperrors "KFlash/internal/errors"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Device sources.
const (
	SourceByID  = "byid"
	SourcePorts = "ports"
)

// Bootloader drivers.
const (
	DriverScript = "script"
	DriverSerial = "serial"
)

// Config captures the paths and tunables of a flashing session.
type Config struct {
	KlipperDir   string
	ScriptsDir   string
	ArtifactPath string
	BuildConfig  string

	SerialDir    string
	DeviceSource string

	Driver      string
	Python      string
	SettleDelay time.Duration
	ResultPause time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

// DefaultConfig returns the layout of a stock Klipper checkout on a Raspberry Pi.
func DefaultConfig() *Config {
	cfg := &Config{
		KlipperDir:   "/home/pi/klipper",
		SerialDir:    "/dev/serial/by-id",
		DeviceSource: SourceByID,
		Driver:       DriverScript,
		Python:       "python3",
		SettleDelay:  2 * time.Second,
		ResultPause:  2 * time.Second,
		LogLevel:     "warn",
		LogFormat:    "text",
	}
	return cfg.Normalize()
}

// Normalize derives the paths left empty from KlipperDir and returns c.
func (c *Config) Normalize() *Config {
	if c.ScriptsDir == "" {
		c.ScriptsDir = filepath.Join(c.KlipperDir, "scripts")
	}
	if c.ArtifactPath == "" {
		c.ArtifactPath = filepath.Join(c.KlipperDir, "out", "klipper.bin")
	}
	if c.BuildConfig == "" {
		c.BuildConfig = filepath.Join(c.KlipperDir, ".config")
	}
	return c
}

// Validate checks the settings and that the Klipper scripts directory is
// reachable. Every failure is a non-recoverable CONFIG error.
func (c *Config) Validate() error {
	switch c.DeviceSource {
	case SourceByID, SourcePorts:
	default:
		return invalidSetting("devices.source", c.DeviceSource)
	}

	switch c.Driver {
	case DriverScript, DriverSerial:
	default:
		return invalidSetting("bootloader.driver", c.Driver)
	}

	if c.SettleDelay < 0 {
		return invalidSetting("bootloader.settle", c.SettleDelay)
	}
	if c.ResultPause < 0 {
		return invalidSetting("bootloader.pause", c.ResultPause)
	}

	return checkToolDir(c.ScriptsDir)
}

func checkToolDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return apperrors.ConfigError(
			apperrors.CodeToolDirMissing,
			"the directory '"+dir+"' was not found. Ensure Klipper is installed correctly",
			err,
		).WithOperation("system.Validate").WithField("path", dir)
	}
	if !info.IsDir() {
		return apperrors.ConfigError(
			apperrors.CodeToolDirMissing,
			"'"+dir+"' is not a directory",
			nil,
		).WithOperation("system.Validate").WithField("path", dir)
	}
	if err := unix.Access(dir, unix.R_OK|unix.X_OK); err != nil {
		return apperrors.ConfigError(
			apperrors.CodeToolDirMissing,
			"the directory '"+dir+"' is not readable",
			errors.Wrap(err, "access"),
		).WithOperation("system.Validate").WithField("path", dir)
	}
	return nil
}

func invalidSetting(key string, value interface{}) error {
	return apperrors.ConfigError(
		apperrors.CodeInvalidSetting,
		"invalid value for "+key,
		errors.Errorf("%v", value),
	).WithOperation("system.Validate").WithField("key", key)
}

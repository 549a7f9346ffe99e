// Package bootloader switches a running Klipper board into its USB
// bootloader so it can be flashed.
package bootloader

import (
	"context"

	"KFlash/internal/logger"
	"KFlash/internal/system"
)

// Driver puts the device at path into bootloader mode.
type Driver interface {
	EnterBootloader(ctx context.Context, path string) error
}

// NewFromConfig returns the driver selected by cfg.Driver.
func NewFromConfig(cfg *system.Config, runner system.Runner, log logger.Logger) Driver {
	if cfg.Driver == system.DriverSerial {
		return NewTouchDriver(log)
	}
	return NewScriptDriver(runner, cfg.Python, cfg.ScriptsDir, log)
}

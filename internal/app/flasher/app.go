// Package flasher wires configuration, device discovery, the firmware build,
// bootloader entry and the terminal into the interactive application.
package flasher

import (
	"context"

	"KFlash/internal/bootloader"
	"KFlash/internal/device"
	"KFlash/internal/firmware"
	"KFlash/internal/logger"
	menu "KFlash/internal/menu/flasher"
	"KFlash/internal/system"
	ui "KFlash/internal/ui/flasher"
)

type App struct {
	config    *system.Config
	logger    logger.Logger
	devices   *device.Enumerator
	menu      *menu.Menu
	validator *StartupValidator
}

func New(cfg *system.Config, log logger.Logger) *App {
	runner := system.NewExecRunner()
	devices := device.NewFromConfig(cfg, runner, log)

	menuManager := menu.NewMenu(cfg, ui.NewTerminal(log), log, menu.Dependencies{
		Devices: devices,
		Builder: firmware.NewBuilder(cfg, runner, log),
		Configs: firmware.NewConfigInstaller(cfg.BuildConfig, log),
		Driver:  bootloader.NewFromConfig(cfg, runner, log),
		Tools:   system.NewToolProbe(),
	})

	return &App{
		config:    cfg,
		logger:    log,
		devices:   devices,
		menu:      menuManager,
		validator: NewStartupValidator(cfg, log),
	}
}

// Run validates the environment and shows the menu until the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.validator.Validate(); err != nil {
		return err
	}
	return a.menu.Run(ctx)
}

// Devices enumerates once without opening the menu.
func (a *App) Devices(ctx context.Context) []device.Entry {
	return a.devices.Enumerate(ctx)
}

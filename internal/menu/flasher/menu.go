package menu

import (
	"context"

	"KFlash/internal/bootloader"
	"KFlash/internal/device"
	"KFlash/internal/firmware"
	"KFlash/internal/logger"
	"KFlash/internal/system"
	ui "KFlash/internal/ui/flasher"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Dependencies are the collaborators a Menu delegates to.
type Dependencies struct {
	Devices DeviceSource
	Builder FirmwareBuilder
	Configs ConfigInstaller
	Driver  bootloader.Driver
	// Tools is optional; without it no missing-tool hint is shown.
	Tools ToolChecker
}

// Menu runs the device -> firmware -> bootloader workflow.
type Menu struct {
	config  *system.Config
	screen  Screen
	logger  logger.Logger
	devices DeviceSource
	builder FirmwareBuilder
	configs ConfigInstaller
	driver  bootloader.Driver
	tools   ToolChecker

	newSessionID func() string
	inspect      func(path string) (firmware.Image, error)
}

// NewMenu creates a new menu manager instance.
func NewMenu(cfg *system.Config, screen Screen, log logger.Logger, deps Dependencies) *Menu {
	if log == nil {
		log = logger.NewStandardLogger()
	}

	return &Menu{
		config:       cfg,
		screen:       screen,
		logger:       log,
		devices:      deps.Devices,
		builder:      deps.Builder,
		configs:      deps.Configs,
		driver:       deps.Driver,
		tools:        deps.Tools,
		newSessionID: uuid.NewString,
		inspect:      firmware.Inspect,
	}
}

// Run shows the device list until the user quits. Devices are enumerated
// once up front and again only on request. The returned error is set only
// when the terminal itself fails.
func (m *Menu) Run(ctx context.Context) error {
	ctx = logger.ContextWithTrace(ctx, logger.TraceContext{SessionID: m.newSessionID()})
	m.logger.InfoContext(ctx, "menu session started")

	entries := m.devices.Enumerate(ctx)

	for ctx.Err() == nil {
		choice, err := m.screen.Select(m.deviceSelection(entries))
		if err != nil {
			return errors.Wrap(err, "device list")
		}

		switch choice.Action {
		case ui.ActionQuit, ui.ActionCancel:
			m.logger.InfoContext(ctx, "menu session ended")
			return nil
		case ui.ActionRefresh:
			entries = m.devices.Enumerate(ctx)
			continue
		}

		entry := entries[choice.Index]
		if !entry.Actionable() {
			m.logger.DebugContext(ctx, "entry is not a device, rescanning", logger.String("label", entry.Label))
			entries = m.devices.Enumerate(ctx)
			continue
		}

		if err := m.flashDevice(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}

func (m *Menu) flashDevice(ctx context.Context, entry device.Entry) error {
	ctx = logger.WithDevice(ctx, entry.Path)
	m.logger.InfoContext(ctx, "device selected", logger.String("kind", entry.Kind.String()))

	image, ok, err := m.selectFirmware(ctx)
	if err != nil {
		return err
	}
	if !ok {
		m.logger.InfoContext(ctx, "firmware selection exited")
		return nil
	}

	m.enterBootloader(ctx, entry, image)
	return nil
}

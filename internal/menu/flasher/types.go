package menu

import (
	"context"
	"time"

	"KFlash/internal/device"
	ui "KFlash/internal/ui/flasher"
)

// Screen is the terminal the menu draws on.
type Screen interface {
	Select(sel ui.Selection) (ui.Choice, error)
	Clear()
	Title(format string, args ...interface{})
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Failure(format string, args ...interface{})
	Prompt(label string) (string, error)
	WaitForKey(message string)
	Wait(ctx context.Context, message string, d time.Duration)
}

// DeviceSource produces the device list.
type DeviceSource interface {
	Enumerate(ctx context.Context) []device.Entry
}

// FirmwareBuilder builds klipper.bin.
type FirmwareBuilder interface {
	ArtifactPath() string
	ArtifactExists() bool
	Build(ctx context.Context) (string, error)
}

// ConfigInstaller replaces the build configuration.
type ConfigInstaller interface {
	Install(src string) error
}

// ToolChecker reports external programs missing from PATH.
type ToolChecker interface {
	Missing(names ...string) []string
}

// OptionKind identifies a firmware selection entry.
type OptionKind int

const (
	OptionExisting OptionKind = iota
	OptionCompile
	OptionCustomConfig
	OptionExit
)

// FirmwareOption is one entry of the firmware selection screen.
type FirmwareOption struct {
	Label string
	Kind  OptionKind
}

const (
	labelExisting     = "Use existing klipper.bin"
	labelCompile      = "Compile new firmware"
	labelCustomConfig = "Use custom firmware.config (Drag and drop supported)"
	labelExit         = "Exit"
)

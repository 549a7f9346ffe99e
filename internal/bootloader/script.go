package bootloader

import (
	"context"
	"strings"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
	"KFlash/internal/system"

	"github.com/pkg/errors"
)

// enterScript imports flash_usb from the directory given as the first argument
// and calls its enter_bootloader with the device given as the second.
const enterScript = `import sys
sys.path.insert(0, sys.argv[1])
import flash_usb
flash_usb.enter_bootloader(sys.argv[2])
`

// ScriptDriver delegates to enter_bootloader from Klipper's scripts/flash_usb.py,
// which knows the board specific protocols (1200 baud touch, CAN, ...).
type ScriptDriver struct {
	runner     system.Runner
	python     string
	scriptsDir string
	logger     logger.Logger
}

// NewScriptDriver returns a driver running python with scriptsDir on sys.path.
func NewScriptDriver(runner system.Runner, python, scriptsDir string, log logger.Logger) *ScriptDriver {
	if python == "" {
		python = "python3"
	}
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &ScriptDriver{runner: runner, python: python, scriptsDir: scriptsDir, logger: log}
}

func (d *ScriptDriver) EnterBootloader(ctx context.Context, path string) error {
	cmd := system.Command{
		Name: d.python,
		Args: []string{"-c", enterScript, d.scriptsDir, path},
	}

	d.logger.DebugContext(ctx, "invoking flash_usb.enter_bootloader", logger.String("python", d.python))

	res, err := d.runner.Output(ctx, cmd)
	if err != nil {
		return apperrors.BootloaderError(apperrors.CodeBootloaderEntry, "could not run "+d.python, err).
			WithOperation("bootloader.ScriptDriver").
			WithField("path", path)
	}
	if !res.Success() {
		return apperrors.BootloaderError(apperrors.CodeBootloaderEntry, "enter_bootloader failed", errors.New(lastLine(res.Stderr))).
			WithOperation("bootloader.ScriptDriver").
			WithField("path", path).
			WithField("exit_code", res.ExitCode)
	}
	return nil
}

// lastLine picks the exception message out of a Python traceback.
func lastLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return "no error output"
	}
	return last
}

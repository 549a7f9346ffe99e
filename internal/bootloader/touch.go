package bootloader

import (
	"context"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// touchBaud is the rate that USB CDC bootloaders treat as a reset request.
const touchBaud = 1200

type modemPort interface {
	SetDTR(dtr bool) error
	Close() error
}

// TouchDriver performs the "1200 baud touch": open the port at 1200 baud with
// DTR asserted, then drop DTR. Boards with a Klipper USB stack reboot into
// their bootloader on the DTR falling edge.
type TouchDriver struct {
	open   func(path string) (modemPort, error)
	logger logger.Logger
}

// NewTouchDriver returns a TouchDriver using go.bug.st/serial.
func NewTouchDriver(log logger.Logger) *TouchDriver {
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &TouchDriver{open: openSerial, logger: log}
}

func openSerial(path string) (modemPort, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate:          touchBaud,
		InitialStatusBits: &serial.ModemOutputBits{DTR: true},
	})
	if err != nil {
		return nil, err
	}
	return port, nil
}

func (d *TouchDriver) EnterBootloader(ctx context.Context, path string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	port, err := d.open(path)
	if err != nil {
		return d.fail(path, "could not open serial port", err)
	}
	defer func() {
		if cerr := port.Close(); cerr != nil && err == nil {
			err = d.fail(path, "could not close serial port", cerr)
		}
	}()

	d.logger.DebugContext(ctx, "dropping DTR at 1200 baud", logger.String("path", path))

	if err := port.SetDTR(false); err != nil {
		return d.fail(path, "could not clear DTR", err)
	}
	return nil
}

func (d *TouchDriver) fail(path, message string, err error) error {
	return apperrors.BootloaderError(apperrors.CodeBootloaderEntry, message, errors.WithStack(err)).
		WithOperation("bootloader.TouchDriver").
		WithField("path", path)
}

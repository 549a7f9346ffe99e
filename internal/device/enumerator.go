package device

import (
	"context"

	apperrors "KFlash/internal/errors"
	errlog "KFlash/internal/errors/logging"
	"KFlash/internal/logger"
)

// SerialLister lists serial devices.
type SerialLister interface {
	ListSerial(ctx context.Context) ([]Entry, error)
}

// DFUScanner lists descriptions of devices in DFU mode.
type DFUScanner interface {
	ScanDFU(ctx context.Context) ([]string, error)
}

// Enumerator combines the serial and DFU queries into the device list.
type Enumerator struct {
	serial SerialLister
	dfu    DFUScanner
	logger logger.Logger
}

// NewEnumerator wires an Enumerator.
func NewEnumerator(serial SerialLister, dfu DFUScanner, log logger.Logger) *Enumerator {
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &Enumerator{serial: serial, dfu: dfu, logger: log}
}

// Enumerate returns the entries to show on the device list. It never fails:
// query errors become a single error entry, and an empty result becomes a
// single placeholder entry. At most one DFU device is listed.
func (e *Enumerator) Enumerate(ctx context.Context) []Entry {
	serial, err := e.serial.ListSerial(ctx)
	if err != nil {
		return []Entry{e.queryFailed(ctx, "serial", err)}
	}

	dfu, err := e.dfu.ScanDFU(ctx)
	if err != nil {
		return []Entry{e.queryFailed(ctx, "dfu", err)}
	}

	e.logger.DebugContext(ctx, "device scan complete",
		logger.Int("serial", len(serial)),
		logger.Int("dfu", len(dfu)),
	)

	if len(serial) == 0 && len(dfu) == 0 {
		return []Entry{placeholderEntry()}
	}

	entries := append([]Entry{}, serial...)
	if len(dfu) > 0 {
		entries = append(entries, dfuEntry(dfu[0]))
	}
	return entries
}

func (e *Enumerator) queryFailed(ctx context.Context, query string, err error) Entry {
	appErr := apperrors.DeviceError(apperrors.CodeDeviceQuery, query+" device query failed", err).
		WithOperation("device.Enumerate").
		WithField("query", query)
	errlog.Warn(ctx, e.logger, "device enumeration failed", appErr)
	return errorEntry(err)
}

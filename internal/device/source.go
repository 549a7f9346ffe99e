package device

import (
	"KFlash/internal/logger"
	"KFlash/internal/system"
)

// NewFromConfig builds the Enumerator selected by cfg.DeviceSource.
func NewFromConfig(cfg *system.Config, runner system.Runner, log logger.Logger) *Enumerator {
	var serial SerialLister
	switch cfg.DeviceSource {
	case system.SourcePorts:
		serial = NewPortLister()
	default:
		serial = NewByIDLister(runner, cfg.SerialDir)
	}
	return NewEnumerator(serial, NewDFUUtil(runner), log)
}

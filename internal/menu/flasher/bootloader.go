package menu

import (
	"context"

	"KFlash/internal/device"
	errlog "KFlash/internal/errors/logging"
	"KFlash/internal/logger"
)

// enterBootloader shows the bootloader screen for entry. The result stays
// visible for the configured pause whatever the outcome.
func (m *Menu) enterBootloader(ctx context.Context, entry device.Entry, image string) {
	m.screen.Clear()
	m.screen.Title("Entering DFU mode for %s...", entry.Label)
	m.screen.Info("Firmware image: %s", image)
	m.describeImage(ctx, image)

	switch {
	case entry.Kind == device.KindDFU:
		m.screen.Success("Device is already in DFU mode.")
	default:
		if err := m.driver.EnterBootloader(ctx, entry.Path); err != nil {
			errlog.Warn(ctx, m.logger, "bootloader entry failed", err)
			m.screen.Failure("Failed to enter DFU mode: %s", describe(err))
			break
		}
		m.screen.Wait(ctx, "Waiting for the bootloader", m.config.SettleDelay)
		m.logger.InfoContext(ctx, "device entered bootloader")
		m.screen.Success("Device is now in DFU mode.")
	}

	m.screen.Wait(ctx, "", m.config.ResultPause)
}

// describeImage adds size and checksum so the image can be matched against
// what dfu-util is about to write. A missing image is only logged.
func (m *Menu) describeImage(ctx context.Context, path string) {
	info, err := m.inspect(path)
	if err != nil {
		m.logger.InfoContext(ctx, "firmware image not readable", logger.String("path", path), logger.Error(err))
		return
	}
	m.screen.Info("%d bytes, built %s, sha256 %s", info.Size, info.Modified.Format("2006-01-02 15:04"), info.SHA256)
}

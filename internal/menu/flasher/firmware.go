package menu

import (
	"context"

	apperrors "KFlash/internal/errors"
	errlog "KFlash/internal/errors/logging"
	"KFlash/internal/logger"
	ui "KFlash/internal/ui/flasher"
)

const customConfigPrompt = "Enter the path to firmware.config (Drag and drop the file here)"

func (m *Menu) firmwareOptions() []FirmwareOption {
	options := make([]FirmwareOption, 0, 4)
	if m.builder.ArtifactExists() {
		options = append(options, FirmwareOption{Label: labelExisting, Kind: OptionExisting})
	}
	return append(options,
		FirmwareOption{Label: labelCompile, Kind: OptionCompile},
		FirmwareOption{Label: labelCustomConfig, Kind: OptionCustomConfig},
		FirmwareOption{Label: labelExit, Kind: OptionExit},
	)
}

func firmwareSelection(options []FirmwareOption) ui.Selection {
	items := make([]string, 0, len(options))
	for _, option := range options {
		items = append(items, option.Label)
	}
	return ui.Selection{
		Title:   "DFU-Util Firmware Flasher",
		Heading: "Select Firmware Option:",
		Items:   items,
		Footer:  "Press ENTER to select",
	}
}

// selectFirmware loops on the firmware screen until an image is chosen or
// built (ok is true) or the user exits (ok is false).
func (m *Menu) selectFirmware(ctx context.Context) (string, bool, error) {
	for ctx.Err() == nil {
		options := m.firmwareOptions()
		choice, err := m.screen.Select(firmwareSelection(options))
		if err != nil {
			return "", false, err
		}
		if choice.Action != ui.ActionConfirm {
			return "", false, nil
		}

		option := options[choice.Index]
		m.logger.DebugContext(ctx, "firmware option selected", logger.String("option", option.Label))

		switch option.Kind {
		case OptionExit:
			return "", false, nil
		case OptionExisting:
			return m.builder.ArtifactPath(), true, nil
		case OptionCustomConfig:
			if !m.applyCustomConfig(ctx) {
				continue
			}
		}

		image, err := m.build(ctx)
		if err != nil {
			continue
		}
		return image, true, nil
	}
	return "", false, nil
}

// applyCustomConfig asks for a configuration file and installs it. It
// reports false when nothing was installed.
func (m *Menu) applyCustomConfig(ctx context.Context) bool {
	m.screen.Clear()
	path, err := m.screen.Prompt(customConfigPrompt)
	if err != nil {
		m.logger.DebugContext(ctx, "configuration prompt aborted", logger.Error(err))
		return false
	}

	if err := m.configs.Install(path); err != nil {
		errlog.Warn(ctx, m.logger, "custom firmware configuration rejected", err)
		if apperrors.HasCode(err, apperrors.CodeFileNotFound) {
			m.screen.Failure("Error: File not found. Press any key to return.")
		} else {
			m.screen.Failure("Error: %s. Press any key to return.", describe(err))
		}
		m.screen.WaitForKey("")
		return false
	}

	m.logger.InfoContext(ctx, "custom firmware configuration installed", logger.String("source", path))
	m.screen.Success("Firmware configuration copied successfully. Press any key to continue.")
	m.screen.WaitForKey("")
	return true
}

func (m *Menu) build(ctx context.Context) (string, error) {
	m.screen.Clear()
	image, err := m.builder.Build(ctx)
	if err != nil {
		errlog.Warn(ctx, m.logger, "firmware build failed", err)
		m.screen.Failure("Build failed: %s", describe(err))
		if ctx.Err() == nil {
			m.screen.WaitForKey("Press any key to return.")
		}
		return "", err
	}
	return image, nil
}

func describe(err error) string {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.Summary()
	}
	return err.Error()
}

package menu

import (
	"strings"

	"KFlash/internal/device"
	"KFlash/internal/system"
	ui "KFlash/internal/ui/flasher"
)

func (m *Menu) deviceSelection(entries []device.Entry) ui.Selection {
	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entry.Label)
	}

	return ui.Selection{
		Title:        "DFU-Util Firmware Flasher",
		Heading:      "Select Serial Device:",
		Status:       m.toolStatus(),
		Items:        items,
		Footer:       "Press ENTER to select device, Q to quit",
		AllowQuit:    true,
		AllowRefresh: true,
	}
}

// toolStatus explains "Error:" entries before the user has to guess.
func (m *Menu) toolStatus() []string {
	if m.tools == nil {
		return nil
	}

	missing := m.tools.Missing(m.requiredTools()...)
	if len(missing) == 0 {
		return nil
	}
	return []string{"Missing tools: " + strings.Join(missing, ", ")}
}

func (m *Menu) requiredTools() []string {
	var tools []string
	if m.config.DeviceSource == system.SourceByID {
		tools = append(tools, "ls")
	}
	tools = append(tools, "dfu-util", "make")
	if m.config.Driver == system.DriverScript {
		tools = append(tools, m.config.Python)
	}
	return tools
}

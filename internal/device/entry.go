// Package device enumerates boards that can be put into bootloader mode:
// USB serial devices and devices already sitting in DFU mode.
package device

import "fmt"

// Kind tells what an Entry stands for.
type Kind int

const (
	KindSerial Kind = iota
	KindDFU
	KindPlaceholder
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSerial:
		return "serial"
	case KindDFU:
		return "dfu"
	case KindPlaceholder:
		return "placeholder"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// NoDevicesMessage is the label of the placeholder entry.
const NoDevicesMessage = "No devices found. Ensure the board is connected."

const dfuLabelPrefix = "Device in DFU mode: "

// Entry is one line of the device list.
type Entry struct {
	Label string
	// Path identifies the device for the bootloader driver. Empty for
	// placeholder and error entries.
	Path string
	Kind Kind
}

// Actionable reports whether the entry refers to a real device.
func (e Entry) Actionable() bool {
	return e.Kind == KindSerial || e.Kind == KindDFU
}

func placeholderEntry() Entry {
	return Entry{Label: NoDevicesMessage, Kind: KindPlaceholder}
}

func errorEntry(err error) Entry {
	return Entry{Label: fmt.Sprintf("Error: %v", err), Kind: KindError}
}

func dfuEntry(line string) Entry {
	return Entry{Label: dfuLabelPrefix + line, Path: line, Kind: KindDFU}
}

package device

import (
	"context"
	"errors"
	"testing"

	"go.bug.st/serial/enumerator"
)

func TestPortListerLabels(t *testing.T) {
	l := &PortLister{list: func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyACM0", IsUSB: true, VID: "1D50", PID: "614E", Product: "stm32f446xx"},
			{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001"},
			{Name: "/dev/ttyS0"},
			nil,
			{Name: ""},
		}, nil
	}}

	entries, err := l.ListSerial(context.Background())
	if err != nil {
		t.Fatalf("ListSerial returned error: %v", err)
	}

	want := []string{
		"/dev/ttyACM0 (1d50:614e stm32f446xx)",
		"/dev/ttyUSB0 (0403:6001)",
		"/dev/ttyS0",
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, label := range want {
		if entries[i].Label != label {
			t.Fatalf("entry %d label = %q, want %q", i, entries[i].Label, label)
		}
		if entries[i].Kind != KindSerial {
			t.Fatalf("entry %d kind = %s", i, entries[i].Kind)
		}
	}
	if entries[0].Path != "/dev/ttyACM0" {
		t.Fatalf("path = %q", entries[0].Path)
	}
}

func TestPortListerError(t *testing.T) {
	l := &PortLister{list: func() ([]*enumerator.PortDetails, error) {
		return nil, errors.New("udev unavailable")
	}}

	if _, err := l.ListSerial(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

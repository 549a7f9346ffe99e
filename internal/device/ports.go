package device

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial/enumerator"
)

// PortLister lists serial ports through the OS port enumerator. Unlike
// ByIDLister it also sees ports without a by-id link and reports USB ids.
type PortLister struct {
	list func() ([]*enumerator.PortDetails, error)
}

// NewPortLister returns a lister backed by go.bug.st/serial.
func NewPortLister() *PortLister {
	return &PortLister{list: enumerator.GetDetailedPortsList}
}

func (l *PortLister) ListSerial(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ports, err := l.list()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating ports")
	}

	var entries []Entry
	for _, p := range ports {
		if p == nil || p.Name == "" {
			continue
		}
		entries = append(entries, Entry{Label: portLabel(p), Path: p.Name, Kind: KindSerial})
	}
	return entries, nil
}

func portLabel(p *enumerator.PortDetails) string {
	if !p.IsUSB {
		return p.Name
	}

	ids := fmt.Sprintf("%s:%s", strings.ToLower(p.VID), strings.ToLower(p.PID))
	if p.Product != "" {
		return fmt.Sprintf("%s (%s %s)", p.Name, ids, p.Product)
	}
	return fmt.Sprintf("%s (%s)", p.Name, ids)
}

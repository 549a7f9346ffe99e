package device

import (
	"context"
	"strings"

	"KFlash/internal/system"
)

// DFUUtil finds devices in DFU mode with dfu-util.
type DFUUtil struct {
	runner system.Runner
}

// NewDFUUtil returns a scanner running dfu-util through runner.
func NewDFUUtil(runner system.Runner) *DFUUtil {
	return &DFUUtil{runner: runner}
}

// ScanDFU returns the "Found DFU" lines printed by dfu-util --list.
func (d *DFUUtil) ScanDFU(ctx context.Context) ([]string, error) {
	res, err := d.runner.Output(ctx, system.Command{Name: "dfu-util", Args: []string{"--list"}})
	if err != nil {
		return nil, err
	}

	var found []string
	for _, line := range splitLines(res.Stdout) {
		if strings.Contains(line, "Found DFU") {
			found = append(found, line)
		}
	}
	return found, nil
}

package device

import (
	"context"
	"path/filepath"
	"strings"

	"KFlash/internal/system"
)

// ByIDLister lists the stable symlinks udev creates under /dev/serial/by-id
// by running ls, the same way a user would check by hand.
type ByIDLister struct {
	runner system.Runner
	dir    string
}

// NewByIDLister returns a lister for dir.
func NewByIDLister(runner system.Runner, dir string) *ByIDLister {
	return &ByIDLister{runner: runner, dir: dir}
}

// ListSerial returns one entry per name in the directory. A missing directory
// makes ls exit non-zero, which means no serial devices are attached.
func (l *ByIDLister) ListSerial(ctx context.Context) ([]Entry, error) {
	res, err := l.runner.Output(ctx, system.Command{Name: "ls", Args: []string{l.dir}})
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, nil
	}

	var entries []Entry
	for _, name := range splitLines(res.Stdout) {
		entries = append(entries, Entry{
			Label: name,
			Path:  filepath.Join(l.dir, name),
			Kind:  KindSerial,
		})
	}
	return entries, nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

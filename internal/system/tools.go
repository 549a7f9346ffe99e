package system

import "os/exec"

// ToolProbe reports which external programs are reachable through PATH.
type ToolProbe struct {
	lookPath func(string) (string, error)
}

// NewToolProbe returns a probe backed by exec.LookPath.
func NewToolProbe() *ToolProbe {
	return &ToolProbe{lookPath: exec.LookPath}
}

// Missing returns the subset of names that cannot be found, in input order.
func (p *ToolProbe) Missing(names ...string) []string {
	var missing []string
	for _, name := range names {
		if binary, err := p.lookPath(name); err != nil || binary == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

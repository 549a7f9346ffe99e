package config

import (
	"KFlash/internal/system"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Dump renders cfg in the configuration file format.
func Dump(cfg *system.Config) ([]byte, error) {
	settings := FromSystem(cfg)
	out, err := yaml.Marshal(&settings)
	if err != nil {
		return nil, errors.Wrap(err, "marshal configuration")
	}
	return out, nil
}

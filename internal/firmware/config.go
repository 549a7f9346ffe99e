package firmware

import (
	"os"
	"strings"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"

	"github.com/pkg/errors"
)

// ConfigInstaller replaces the build configuration (.config) with a file
// supplied by the user.
type ConfigInstaller struct {
	dest   string
	logger logger.Logger
}

// NewConfigInstaller returns an installer writing to dest.
func NewConfigInstaller(dest string, log logger.Logger) *ConfigInstaller {
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &ConfigInstaller{dest: dest, logger: log}
}

// Destination is the build configuration path.
func (c *ConfigInstaller) Destination() string {
	return c.dest
}

// Install copies src over the build configuration. If src does not name a
// regular file the destination is left untouched and a VALIDATION error
// carrying CodeFileNotFound is returned.
func (c *ConfigInstaller) Install(src string) error {
	path := CleanPath(src)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if err == nil {
			err = errors.Errorf("%s is a directory", path)
		}
		return apperrors.ValidationError(apperrors.CodeFileNotFound, "file not found", err).
			WithOperation("firmware.InstallConfig").
			WithField("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c.copyFailed(path, errors.Wrap(err, "read"))
	}

	if err := os.Remove(c.dest); err != nil && !os.IsNotExist(err) {
		return c.copyFailed(path, errors.Wrap(err, "remove previous configuration"))
	}
	if err := os.WriteFile(c.dest, data, 0o644); err != nil {
		return c.copyFailed(path, errors.Wrap(err, "write"))
	}

	c.logger.Info("installed build configuration %s -> %s (%d bytes)", path, c.dest, len(data))
	return nil
}

func (c *ConfigInstaller) copyFailed(path string, err error) error {
	return apperrors.BuildError(apperrors.CodeConfigCopyFailed, "could not install firmware configuration", err).
		WithOperation("firmware.InstallConfig").
		WithField("path", path).
		WithField("dest", c.dest)
}

// CleanPath undoes what terminals add when a file is dragged onto them:
// surrounding whitespace, a pair of quotes, backslash-escaped spaces.
func CleanPath(input string) string {
	path := strings.TrimSpace(input)
	if len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if (first == '\'' || first == '"') && first == last {
			return path[1 : len(path)-1]
		}
	}
	return strings.ReplaceAll(path, `\ `, " ")
}

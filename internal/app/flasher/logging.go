package flasher

import (
	"io"
	"os"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
	"KFlash/internal/system"
)

// NewLogger builds the logger described by cfg. The returned close function
// releases the log file, if any.
func NewLogger(cfg *system.Config) (logger.Logger, func() error, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, invalidLogSetting("log.level", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.ConfigError(apperrors.CodeInvalidSetting, "cannot open log file", err).
				WithOperation("app.NewLogger").
				WithField("path", cfg.LogFile)
		}
		out = file
		closeFn = file.Close
	}

	options := []logger.Option{logger.WithLevel(level), logger.WithOutput(out)}

	switch cfg.LogFormat {
	case "json":
		options = append(options, logger.WithFormatter(&logger.JSONFormatter{}))
		return logger.NewStandardLogger(options...), closeFn, nil
	case "", "text":
		if cfg.LogFile != "" {
			return logger.NewStandardLogger(options...), closeFn, nil
		}
		return logger.NewColoredLogger(options...), closeFn, nil
	default:
		_ = closeFn()
		return nil, nil, invalidLogSetting("log.format", nil).WithField("value", cfg.LogFormat)
	}
}

func invalidLogSetting(key string, err error) *apperrors.AppError {
	return apperrors.ConfigError(apperrors.CodeInvalidSetting, "invalid value for "+key, err).
		WithOperation("app.NewLogger").
		WithField("key", key)
}

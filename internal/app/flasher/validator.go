package flasher

import (
	"os"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
	"KFlash/internal/system"

	"golang.org/x/term"
)

type validation struct {
	name      string
	operation string
	category  apperrors.ErrorCategory
	fn        func() error
}

// StartupValidator runs the checks that must pass before the menu opens.
type StartupValidator struct {
	config     *system.Config
	logger     logger.Logger
	isTerminal func() bool
}

// NewStartupValidator constructs a validator instance.
func NewStartupValidator(cfg *system.Config, log logger.Logger) *StartupValidator {
	return &StartupValidator{
		config: cfg,
		logger: log,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Validate checks the configuration, the Klipper directory and the terminal.
func (v *StartupValidator) Validate() error {
	return v.runValidations([]validation{
		{"Configuration", "validator.validateConfig", apperrors.ErrCategoryConfig, v.config.Validate},
		{"Terminal", "validator.validateTerminal", apperrors.ErrCategorySystem, v.validateTerminal},
	})
}

func (v *StartupValidator) runValidations(checks []validation) error {
	for _, check := range checks {
		v.logger.Debug("Validating %s", check.name)
		if err := check.fn(); err != nil {
			if appErr, ok := apperrors.As(err); ok {
				return appErr
			}
			return apperrors.New(genericCode(check.category), check.category, check.name+" validation failed", err).
				WithOperation(check.operation)
		}
	}
	return nil
}

func (v *StartupValidator) validateTerminal() error {
	if v.isTerminal() {
		return nil
	}
	return apperrors.SystemError(apperrors.CodeNoTerminal, "the menu needs an interactive terminal; use 'kflash devices' for scripts", nil).
		WithOperation("validator.validateTerminal")
}

func genericCode(category apperrors.ErrorCategory) string {
	if category == apperrors.ErrCategoryConfig {
		return apperrors.CodeConfigGeneric
	}
	return apperrors.CodeSystemGeneric
}

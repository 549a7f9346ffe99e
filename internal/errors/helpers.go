package errors

import "time"

// New creates a generic AppError with the supplied metadata.
func New(code string, category ErrorCategory, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		Category:  category,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// SystemError creates a SYSTEM category error instance.
func SystemError(code, message string, err error) *AppError {
	return New(code, ErrCategorySystem, message, err)
}

// ConfigError creates a CONFIG category error instance. Configuration errors
// are raised at startup and are never recoverable.
func ConfigError(code, message string, err error) *AppError {
	return New(code, ErrCategoryConfig, message, err)
}

// ValidationError creates a VALIDATION category error instance.
func ValidationError(code, message string, err error) *AppError {
	e := New(code, ErrCategoryValidation, message, err)
	e.Recoverable = true
	return e
}

// DeviceError creates a DEVICE category error instance.
func DeviceError(code, message string, err error) *AppError {
	e := New(code, ErrCategoryDevice, message, err)
	e.Recoverable = true
	return e
}

// BuildError creates a BUILD category error instance.
func BuildError(code, message string, err error) *AppError {
	e := New(code, ErrCategoryBuild, message, err)
	e.Recoverable = true
	return e
}

// BootloaderError creates a BOOTLOADER category error instance.
func BootloaderError(code, message string, err error) *AppError {
	e := New(code, ErrCategoryBootloader, message, err)
	e.Recoverable = true
	return e
}

package errors

// ErrorCategory groups related application errors for unified handling.
type ErrorCategory string

const (
	ErrCategorySystem     ErrorCategory = "SYSTEM"
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryDevice     ErrorCategory = "DEVICE"
	ErrCategoryBuild      ErrorCategory = "BUILD"
	ErrCategoryBootloader ErrorCategory = "BOOTLOADER"
)

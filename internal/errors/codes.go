package errors

// Generic error code definitions used as sensible defaults across modules.
const (
	CodeSystemGeneric     = "SYS-000"
	CodeConfigGeneric     = "CFG-000"
	CodeValidationGeneric = "VAL-000"
	CodeDeviceGeneric     = "DEV-000"
	CodeBuildGeneric      = "BLD-000"
	CodeBootloaderGeneric = "BOOT-000"
)

// Specific codes raised by the flasher.
const (
	CodeNoTerminal       = "SYS-001"
	CodeToolDirMissing   = "CFG-001"
	CodeInvalidSetting   = "CFG-002"
	CodeFileNotFound     = "VAL-001"
	CodeDeviceQuery      = "DEV-001"
	CodeBuildStepFailed  = "BLD-001"
	CodeConfigCopyFailed = "BLD-002"
	CodeBootloaderEntry  = "BOOT-001"
)

package errors

import (
	stderrors "errors"
	"testing"
)

func TestAppErrorFormatting(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := ConfigError(CodeToolDirMissing, "scripts directory is not accessible", cause)

	want := "[CONFIG:CFG-001] scripts directory is not accessible: permission denied"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if got := err.Summary(); got != "scripts directory is not accessible: permission denied" {
		t.Fatalf("Summary() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable")
	}
	if err.Recoverable {
		t.Fatalf("config errors must not be recoverable")
	}
}

func TestRecoverableCategories(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		cat  ErrorCategory
	}{
		{"validation", ValidationError(CodeFileNotFound, "missing", nil), ErrCategoryValidation},
		{"device", DeviceError(CodeDeviceQuery, "query", nil), ErrCategoryDevice},
		{"build", BuildError(CodeBuildStepFailed, "build", nil), ErrCategoryBuild},
		{"bootloader", BootloaderError(CodeBootloaderEntry, "boot", nil), ErrCategoryBootloader},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.err.Recoverable {
				t.Fatalf("expected %s error to be recoverable", tc.name)
			}
			if tc.err.Category != tc.cat {
				t.Fatalf("category = %s, want %s", tc.err.Category, tc.cat)
			}
		})
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := ValidationError(CodeFileNotFound, "file not found", nil)
	wrapped := fmtWrap(inner)

	if !HasCode(wrapped, CodeFileNotFound) {
		t.Fatalf("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, CodeBuildStepFailed) {
		t.Fatalf("unexpected code match")
	}
	if HasCode(stderrors.New("plain"), CodeFileNotFound) {
		t.Fatalf("plain errors carry no code")
	}
}

type wrapper struct{ err error }

func (w wrapper) Error() string { return "outer: " + w.err.Error() }
func (w wrapper) Unwrap() error { return w.err }

func fmtWrap(err error) error { return wrapper{err: err} }

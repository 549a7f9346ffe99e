// Package firmware drives the Klipper build: make menuconfig, make, and the
// .config file the build reads.
package firmware

import (
	"context"
	"os"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
	"KFlash/internal/system"
)

// Step is one phase of the firmware build.
type Step struct {
	Name    string
	Command system.Command
}

// Builder runs the Klipper build in the checkout directory.
type Builder struct {
	runner     system.Runner
	klipperDir string
	artifact   string
	logger     logger.Logger
}

// NewBuilder returns a Builder for the checkout described by cfg.
func NewBuilder(cfg *system.Config, runner system.Runner, log logger.Logger) *Builder {
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &Builder{
		runner:     runner,
		klipperDir: cfg.KlipperDir,
		artifact:   cfg.ArtifactPath,
		logger:     log,
	}
}

// ArtifactPath is where the build leaves klipper.bin.
func (b *Builder) ArtifactPath() string {
	return b.artifact
}

// ArtifactExists reports whether a previous build left an artifact behind.
func (b *Builder) ArtifactExists() bool {
	info, err := os.Stat(b.artifact)
	return err == nil && !info.IsDir()
}

// Steps lists the build phases in execution order.
func (b *Builder) Steps() []Step {
	return []Step{
		{Name: "configure", Command: system.Command{Name: "make", Args: []string{"menuconfig"}, Dir: b.klipperDir}},
		{Name: "compile", Command: system.Command{Name: "make", Dir: b.klipperDir}},
	}
}

// Build runs every step attached to the terminal and returns the artifact
// path. A step exiting non-zero does not stop the build and the artifact is
// not required to exist afterwards; both are only logged. The error is set
// only when a step could not be started.
func (b *Builder) Build(ctx context.Context) (string, error) {
	for _, step := range b.Steps() {
		b.logger.DebugContext(ctx, "executing build step", logger.String("step", step.Name))

		res, err := b.runner.Run(ctx, step.Command)
		if err != nil {
			return "", apperrors.BuildError(apperrors.CodeBuildStepFailed, "build step "+step.Name+" could not run", err).
				WithOperation("firmware.Build").
				WithField("command", step.Command.String())
		}
		if !res.Success() {
			b.logger.WarnContext(ctx, "build step exited with an error",
				logger.String("step", step.Name),
				logger.Int("exit_code", res.ExitCode),
			)
		}
	}

	if !b.ArtifactExists() {
		b.logger.WarnContext(ctx, "firmware artifact missing after build", logger.String("path", b.artifact))
	}

	return b.artifact, nil
}

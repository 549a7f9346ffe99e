package ui

import (
	"io"
	"os"

	"KFlash/internal/logger"
)

// Console coordinates progress indicators with the logger.
type Console struct {
	logger   logger.Logger
	output   io.Writer
	progress logger.Progress
}

// NewConsole builds a Console bound to the provided logger.
func NewConsole(log logger.Logger, output io.Writer) *Console {
	if output == nil {
		output = os.Stdout
	}
	if log == nil {
		log = logger.NewStandardLogger()
	}
	return &Console{logger: log, output: output}
}

// StartProgress shows a fresh spinner next to operation.
func (c *Console) StartProgress(operation string) {
	c.logger.Debug("Waiting: %s", operation)
	c.progress = logger.NewSpinnerProgress(c.output)
	c.progress.Start(operation)
}

// StopProgress stops the running spinner, if any.
func (c *Console) StopProgress(operation string) {
	if c.progress == nil {
		return
	}
	c.progress.Stop(operation)
	c.progress = nil
}

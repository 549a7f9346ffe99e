package main

import (
	"os"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/logger"
)

func main() {
	log := logger.NewColoredLogger()

	if err := newRootCommand().Execute(); err != nil {
		if appErr, ok := apperrors.As(err); ok {
			log.Error("%s", appErr.Summary())
		} else {
			log.Error("%v", err)
		}
		os.Exit(1)
	}
}

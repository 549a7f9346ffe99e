// Package ui implements the terminal front end of the flasher: full-screen
// lists driven by bubbletea and line-oriented prompts and messages.
package ui

import (
	"bufio"
	"context"
	"os"
	"time"

	"KFlash/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Terminal is the interactive screen bound to the process TTY.
type Terminal struct {
	in      *os.File
	out     *os.File
	printer *Printer
	console *Console
}

// NewTerminal returns a Terminal on stdin/stdout.
func NewTerminal(log logger.Logger) *Terminal {
	return &Terminal{
		in:      os.Stdin,
		out:     os.Stdout,
		printer: NewPrinter(os.Stdout),
		console: NewConsole(log, os.Stdout),
	}
}

// Select shows sel on the alternate screen until the user confirms, quits,
// refreshes or cancels.
func (t *Terminal) Select(sel Selection) (Choice, error) {
	program := tea.NewProgram(
		NewSelector(sel),
		tea.WithAltScreen(),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := program.Run()
	if err != nil {
		return Choice{}, errors.Wrap(err, "menu")
	}

	selector, ok := final.(*Selector)
	if !ok {
		return Choice{}, errors.Errorf("unexpected menu model %T", final)
	}
	if choice, done := selector.Choice(); done {
		return choice, nil
	}
	return Choice{Action: ActionCancel}, nil
}

func (t *Terminal) Clear() {
	t.printer.Clear()
}

func (t *Terminal) Title(format string, args ...interface{}) {
	t.printer.Title(format, args...)
}

func (t *Terminal) Info(format string, args ...interface{}) {
	t.printer.Info(format, args...)
}

func (t *Terminal) Success(format string, args ...interface{}) {
	t.printer.Success(format, args...)
}

func (t *Terminal) Failure(format string, args ...interface{}) {
	t.printer.Failure(format, args...)
}

// Prompt reads one line of text. Ctrl+C and Ctrl+D return an error.
func (t *Terminal) Prompt(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  t.in,
		Stdout: t.out,
	}
	return prompt.Run()
}

// WaitForKey shows message, if any, and returns after a single key press.
// When stdin is not a terminal it waits for a full line instead.
func (t *Terminal) WaitForKey(message string) {
	if message != "" {
		t.printer.Info("%s", message)
	}

	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		_, _ = bufio.NewReader(t.in).ReadString('\n')
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		_, _ = bufio.NewReader(t.in).ReadString('\n')
		return
	}
	defer term.Restore(fd, state)

	var buf [1]byte
	_, _ = t.in.Read(buf[:])
}

// Wait blocks for d or until ctx is done. A non-empty message is shown with
// a spinner while waiting.
func (t *Terminal) Wait(ctx context.Context, message string, d time.Duration) {
	if message != "" {
		t.console.StartProgress(message)
		defer t.console.StopProgress(message)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

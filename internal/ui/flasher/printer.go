package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer renders the line-oriented screens (progress and result messages)
// shown between the full-screen lists.
type Printer struct {
	out     io.Writer
	title   *color.Color
	heading *color.Color
	success *color.Color
	failure *color.Color
	plain   *color.Color
}

// NewPrinter constructs a Printer with colour automatically enabled for TTY outputs.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}

	p := &Printer{
		out:     out,
		title:   color.New(color.FgCyan, color.Bold),
		heading: color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		plain:   color.New(color.Reset),
	}

	if !supportsColor(out) || os.Getenv("NO_COLOR") != "" {
		for _, c := range []*color.Color{p.title, p.heading, p.success, p.failure, p.plain} {
			c.DisableColor()
		}
	}

	return p
}

// Title prints a screen title.
func (p *Printer) Title(format string, args ...interface{}) {
	p.title.Fprintf(p.out, format+"\n", args...)
}

// Heading prints a section heading.
func (p *Printer) Heading(format string, args ...interface{}) {
	p.heading.Fprintf(p.out, format+"\n", args...)
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...interface{}) {
	p.plain.Fprintf(p.out, format+"\n", args...)
}

// Success prints a line in the success colour.
func (p *Printer) Success(format string, args ...interface{}) {
	p.success.Fprintf(p.out, format+"\n", args...)
}

// Failure prints a line in the failure colour.
func (p *Printer) Failure(format string, args ...interface{}) {
	p.failure.Fprintf(p.out, format+"\n", args...)
}

// Clear wipes the screen and homes the cursor.
func (p *Printer) Clear() {
	fmt.Fprint(p.out, "\033[H\033[2J")
}

func supportsColor(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

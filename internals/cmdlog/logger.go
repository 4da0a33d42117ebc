// Package cmdlog logs pretty stuff to the console
package cmdlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
)

// Logger writes leveled, colored output for CLI commands
type Logger struct {
	color     bool
	indention int
}

// New returns a new Logger. Color is enabled only on a terminal.
func New() *Logger {
	return &Logger{
		color: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

func (l *Logger) println(a string) {
	fmt.Println(strings.Repeat(" ", l.indention) + a)
}

// Headline prints a bold cyan line
func (l *Logger) Headline(s string) {
	if !l.color {
		l.println(s)
		return
	}
	color.Style{color.FgCyan, color.OpBold}.Println(s)
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a dimmed line
func (l *Logger) Log(s string) {
	if !l.color {
		l.println(s)
		return
	}
	color.LightWhite.Println(s)
}

// Warn prints a warning
func (l *Logger) Warn(s string) {
	if !l.color {
		l.println("warning: " + s)
		return
	}
	color.Style{color.FgYellow, color.OpBold}.Println(s)
}

// Fail prints the given message and exits 1
func (l *Logger) Fail(s string) {
	if !l.color {
		l.println("error: " + s)
	} else {
		color.Style{color.FgRed, color.OpBold}.Print("Error: ")
		color.Style{color.FgWhite, color.OpBold}.Println(s)
	}
	os.Exit(1)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// statusKind classifies a summary line so terminal output gets a matching
// color.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const ansiReset = "\x1b[0m"

func (k statusKind) String() string {
	switch k {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (k statusKind) color() string {
	switch k {
	case statusOK:
		return "\x1b[32m"
	case statusWarn:
		return "\x1b[33m"
	case statusError:
		return "\x1b[31m"
	default:
		return "\x1b[34m"
	}
}

// printStatus writes one aligned status line for scan, rename, and catalog
// summaries, colorized only when the writer is a terminal.
func printStatus(w io.Writer, label string, kind statusKind, message string) {
	status := fmt.Sprintf("[%s]", kind)
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("  %-18s %s", label+":", status)
	if shouldColorize(w) {
		line = kind.color() + line + ansiReset
	}
	fmt.Fprintln(w, line)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

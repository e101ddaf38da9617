// Package logging is the status output of vid2webp: one line per message,
// prefixed by a status symbol and optionally colored.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI colors
const (
	red    = "\033[1;91m"
	green  = "\033[1;92m"
	yellow = "\033[1;93m"
	cyan   = "\033[1;96m"
	reset  = "\033[0m"
)

// Options for NewLogger
type Options struct {
	Out     io.Writer // defaults to os.Stdout
	NoColor bool
	Verbose bool // enables Debug and Printf
}

// Logger writes leveled status lines. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	color   bool
	verbose bool
}

// NewLogger creates a logger. Colors are used only when Out is a terminal.
func NewLogger(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		out:     out,
		color:   !opts.NoColor && IsTerminal(out),
		verbose: opts.Verbose,
	}
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Verbose reports whether debug output is enabled
func (l *Logger) Verbose() bool { return l.verbose }

func (l *Logger) line(symbol, color, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range strings.Split(text, "\n") {
		switch {
		case symbol == "":
			_, _ = io.WriteString(l.out, s+"\n")
		case l.color && color != "":
			_, _ = io.WriteString(l.out, color+symbol+reset+" "+s+"\n")
		default:
			_, _ = io.WriteString(l.out, symbol+" "+s+"\n")
		}
		// continuation lines are indented under the first one
		if symbol != "" {
			symbol = " "
			color = ""
		}
	}
}

// Info logs a plain line
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("", "", fmt.Sprintf(format, args...))
}

// Success logs with a check mark (green)
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("✅", green, fmt.Sprintf(format, args...))
}

// Warn logs with a warning sign (yellow)
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("⚠️", yellow, fmt.Sprintf(format, args...))
}

// Error logs with a cross mark (red)
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("❌", red, fmt.Sprintf(format, args...))
}

// Debug logs only when verbose (cyan)
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("»", cyan, fmt.Sprintf(format, args...))
}

// Printf is Debug with a trailing newline trimmed, so a Logger can be used
// as goffmpeg debug printer
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Debug("%s", strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

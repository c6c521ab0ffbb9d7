// Package logging provides the opt-in verbose logger shared by the
// automaton compiler, the rewriting engine and the frame workers.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger prints prefixed diagnostic lines when enabled. Loggers derived
// with Named share the writer and its lock, so lines from concurrent
// workers never interleave.
type Logger struct {
	enabled bool
	name    string
	sink    *sink
}

type sink struct {
	mu  sync.Mutex
	out io.Writer
}

// New creates a logger writing to stderr.
func New(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		sink:    &sink{out: os.Stderr},
	}
}

// Discard returns a disabled logger.
func Discard() *Logger {
	return New(false)
}

// SetOutput sets the output writer for the logger and every logger
// derived from it.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.out = w
	l.sink.mu.Unlock()
}

// Named returns a child logger whose lines carry an extra [name] chip.
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return nil
	}
	n := name
	if l.name != "" {
		n = l.name + "][" + name
	}
	return &Logger{enabled: l.enabled, name: n, sink: l.sink}
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil || !l.enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l == nil || !l.enabled {
		return
	}
	l.write("=== " + name + " ===")
}

// Lines logs every non-blank line of text. Used to relay
// the output of external processes.
func (l *Logger) Lines(text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r \t")
		if strings.TrimSpace(line) != "" {
			l.Log("%s", line)
		}
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

func (l *Logger) write(msg string) {
	prefix := "[lindenmayer] "
	if l.name != "" {
		prefix = "[lindenmayer][" + l.name + "] "
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	fmt.Fprintln(l.sink.out, prefix+msg)
}

// Package log is a small wrapper around the standard library logger that
// hands out named loggers per component ("index", "query", "repl") and adds
// a debug level that can be switched on globally from the CLI.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"sync/atomic"
)

// Logger emits lines prefixed with the component name.
type Logger struct {
	name string
	std  *log.Logger
}

var (
	debug atomic.Bool

	mu      sync.Mutex
	out     io.Writer = os.Stderr
	loggers           = make(map[string]*Logger)
)

// ForComponent returns (and memoizes) the named logger for a component.
func ForComponent(name string) *Logger {
	if name == "" {
		name = "birdql"
	}
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := &Logger{name: name, std: log.New(out, "", log.LstdFlags)}
	loggers[name] = l
	return l
}

// SetDebug enables or disables debug logging for every logger.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// SetOutput redirects all loggers, existing and future, to w.
// Tests use this with a bytes.Buffer to assert on log contents.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	out = w
	for _, l := range loggers {
		l.std.SetOutput(w)
	}
}

func (l *Logger) emit(level, msg string) {
	l.std.Println(level + " [" + l.name + "] " + msg)
}

// Infof logs an informational message with fmt.Sprintf semantics.
func (l *Logger) Infof(format string, args ...any) {
	l.emit("INFO", fmt.Sprintf(format, args...))
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit("WARN", fmt.Sprintf(format, args...))
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit("ERROR", fmt.Sprintf(format, args...))
}

// Debugf logs only when debug logging has been enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !debug.Load() {
		return
	}
	l.emit("DEBUG", fmt.Sprintf(format, args...))
}

// Package logger prints pipeline diagnostics to stderr when the
// --verbose flag is set. Services log what each search stage did
// (chunk counts, candidate pools, rank fusion) so users can see why
// a result scored the way it did. Errors print unconditionally.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output, mainly for tests. The default is
// os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf writes one tagged line. Caller holds at least a read lock.
func logf(tag, format string, args ...any) {
	fmt.Fprintf(output, "["+tag+"] "+format+"\n", args...)
}

// Debug logs a message in verbose mode.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		logf("DEBUG", format, args...)
	}
}

// Info logs a message in verbose mode.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		logf("INFO", format, args...)
	}
}

// Warn logs a warning in verbose mode.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		logf("WARN", format, args...)
	}
}

// Error logs an error regardless of verbose mode.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logf("ERROR", format, args...)
}

// Section marks the start of a pipeline stage in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

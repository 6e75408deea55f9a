// Package logger provides the process-wide leveled logger.
//
// Output goes to stderr so calendar payloads written to stdout-adjacent
// response writers are never interleaved with diagnostics. Debug lines are
// suppressed unless verbose mode is enabled.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	std     = log.New(os.Stderr, "", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Debug logs a formatted message when verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if !v {
		return
	}
	std.Print("DEBUG " + fmt.Sprintf(format, args...))
}

// Info logs a formatted informational message.
func Info(format string, args ...any) {
	std.Print("INFO  " + fmt.Sprintf(format, args...))
}

// Warn logs a formatted warning message.
func Warn(format string, args ...any) {
	std.Print("WARN  " + fmt.Sprintf(format, args...))
}

// Error logs a formatted error message.
func Error(format string, args ...any) {
	std.Print("ERROR " + fmt.Sprintf(format, args...))
}

// Package tracelog is the default runtime sink of rewritten logging
// labels. It is deliberately dependency-free: it links into end-user
// programs.
package tracelog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// SetOutput redirects emission output. Default is stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// Log prints a log-level message: the call-site prefix followed by the
// payload values, space-separated.
func Log(prefix string, args ...any) { emit("", prefix, args) }

// Warn prints a warning-level message.
func Warn(prefix string, args ...any) { emit("WARN ", prefix, args) }

// Debug prints a debug-level message.
func Debug(prefix string, args ...any) { emit("DEBUG ", prefix, args) }

// Error prints an error-level message.
func Error(prefix string, args ...any) { emit("ERROR ", prefix, args) }

func emit(level, prefix string, args []any) {
	operands := make([]any, 0, len(args)+1)
	operands = append(operands, level+prefix)
	operands = append(operands, args...)

	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintln(output, operands...)
}

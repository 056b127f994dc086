// Package log wraps the standard logger. Messages are expected to start with a level tag:
// [DEBUG], [INFO], [WARN] or [ERROR]. [DEBUG] messages are dropped unless debug is on.
package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

var (
	debug atomic.Bool
	std   = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
)

func SetDebug(on bool) {
	debug.Store(on)
}

func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func Printf(format string, v ...any) {
	if !allowed(format) {
		return
	}
	std.Printf(format, v...)
}

// Fatalf exits even when the message itself is filtered out.
func Fatalf(format string, v ...any) {
	if !allowed(format) {
		os.Exit(1)
	}
	std.Fatalf(format, v...)
}

func allowed(s string) bool {
	if debug.Load() {
		return true
	}
	return !strings.HasPrefix(s, "[DEBUG]")
}

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "TK_DEBUG"

var (
	mu      sync.RWMutex
	verbose bool
	logger  = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out).With().Logger().Level(zerolog.InfoLevel)
}

// Configure points the logger at w. verbose forces debug output on
// regardless of TK_DEBUG.
func Configure(w io.Writer, v bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
	verbose = v
}

// DebugEnabled returns true if debug mode is enabled via TK_DEBUG or --verbose.
func DebugEnabled() bool {
	mu.RLock()
	v := verbose
	mu.RUnlock()
	return v || os.Getenv(DebugEnv) != ""
}

// Logger returns the process logger at the level implied by DebugEnabled.
func Logger() zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if DebugEnabled() {
		return l.Level(zerolog.DebugLevel)
	}
	return l
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		l := Logger()
		l.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

// Debugln logs its arguments, space separated, only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		l := Logger()
		l.Debug().Msg(fmt.Sprintln(args...))
	}
}

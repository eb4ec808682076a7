package logger

import (
	"log"
	"sync/atomic"
)

const (
	errorLabel = "[ERROR] "
	warnLabel  = "[WARN ] "
	infoLabel  = "[INFO ] "
	debugLabel = "[DEBUG] "
)

var verbose atomic.Bool

// SetVerbose turns Debug output on or off. Debug is off by default.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Verbose reports whether Debug output is enabled.
func Verbose() bool {
	return verbose.Load()
}

// mylog prepends the level string to log.Printf.
// Arguments are handled in the manner of [fmt.Printf].
func mylog(level string, format string, args ...interface{}) {
	log.Printf(level+format, args...)
}

// Error prints to the standard logger, adding an error label.
func Error(format string, args ...interface{}) {
	mylog(errorLabel, format, args...)
}

// Warn prints to the standard logger, adding a warn label.
func Warn(format string, args ...interface{}) {
	mylog(warnLabel, format, args...)
}

// Info prints to the standard logger, adding an info label.
func Info(format string, args ...interface{}) {
	mylog(infoLabel, format, args...)
}

// Debug prints to the standard logger, adding a debug label, when verbose
// output is enabled.
func Debug(format string, args ...interface{}) {
	if !verbose.Load() {
		return
	}
	mylog(debugLabel, format, args...)
}

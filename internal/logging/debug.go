package logging

import (
	"fmt"
	"os"
	"strings"
)

// DebugEnvVar enables debug tracing when set to any non-empty value
const DebugEnvVar = "PT_DEBUG"

// DebugEnabled returns true if debug mode is enabled via PT_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf writes a formatted debug message through the standard logger
// only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		Std().Debug(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
	}
}

// Debugln writes a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		Std().Debug(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
}

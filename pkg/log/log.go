package log

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// A Logger provides leveled logging for one server module.
// The functions are Printf-style and safe for concurrent use.
// Levels that are switched off log nothing.
type Logger struct {
	moduleName string
	Verbosef   func(format string, args ...any)
	Infof      func(format string, args ...any)
	Warningf   func(format string, args ...any)
	Errorf     func(format string, args ...any)
}

// Log levels for use with NewLogger.
const (
	LogLevelSilent  = iota // No logging
	LogLevelVerbose        // Debug logging
	LogLevelInfo           // Info logging
	LogLevelWarning        // Warning logging
	LogLevelError          // Error logging
)

// Loglevel is the process-wide default used by NewLogger callers that
// take the level from configuration.
var Loglevel = LogLevelInfo

// SetLogLevel maps a config string to a level constant.
func SetLogLevel(level string) int {
	switch strings.ToLower(level) {
	case "error":
		return LogLevelError
	case "verbose":
		return LogLevelVerbose
	case "info":
		return LogLevelInfo
	case "warning":
		return LogLevelWarning
	default:
		return LogLevelSilent
	}
}

// DiscardLogf discards logged lines.
func DiscardLogf(format string, args ...any) {}

func (logger *Logger) logf(prefix string) func(string, ...any) {
	return log.New(os.Stdout, fmt.Sprintf("[%s] %s: ", logger.moduleName, prefix), log.Ldate|log.Ltime).Printf
}

// NewLogger constructs a Logger writing to stdout at the given level,
// prefixing every line with the module name.
func NewLogger(level int, moduleName string) *Logger {
	logger := &Logger{moduleName, DiscardLogf, DiscardLogf, DiscardLogf, DiscardLogf}
	switch level {
	case LogLevelVerbose:
		logger.Verbosef = logger.logf("DEBUG")
		fallthrough
	case LogLevelInfo:
		logger.Infof = logger.logf("INFO")
		fallthrough
	case LogLevelWarning:
		logger.Warningf = logger.logf("WARNING")
		fallthrough
	case LogLevelError:
		logger.Errorf = logger.logf("ERROR")
	}
	return logger
}

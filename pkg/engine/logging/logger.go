// Package logging is a small leveled wrapper around the standard logger.
// Messages below the current level are dropped; everything else goes to a
// single writer, stderr by default.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel is the severity of a message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name, in any case, to a LogLevel
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu     sync.Mutex
	level  = INFO
	logger = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel sets the minimum level that is written
func SetLevel(l LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// Level returns the current minimum level
func Level() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetOutput redirects all log output
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Debug logs a DEBUG message
func Debug(format string, args ...interface{}) {
	logMessage(DEBUG, format, args...)
}

// Info logs an INFO message
func Info(format string, args ...interface{}) {
	logMessage(INFO, format, args...)
}

// Warn logs a WARN message
func Warn(format string, args ...interface{}) {
	logMessage(WARN, format, args...)
}

// Error logs an ERROR message
func Error(format string, args ...interface{}) {
	logMessage(ERROR, format, args...)
}

func logMessage(l LogLevel, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	logger.Printf("[%s] %s", l.String(), fmt.Sprintf(format, args...))
}

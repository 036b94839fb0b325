package logger

import (
	"sync"
)

// Log levels accepted in config files.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	processLogger *Logger
	once          sync.Once
)

// Get returns the process-wide logger. Only the first call's level is used;
// later calls return the same instance whatever level they ask for.
func Get(level string) *Logger {
	once.Do(func() {
		processLogger = newZapLogger(level, nil)
	})
	return processLogger
}

package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger sets up the process-wide logger. Only the first call takes
// effect; later calls are no-ops so subcommands can share one logger.
func InitLogger(logLevel, logFile string, debugToConsole bool) {
	loggerOnce.Do(func() {
		globalLogger = NewLogger(logLevel, logFile, debugToConsole)
	})
}

// logger returns the global instance, or nil before InitLogger runs.
// The LogX helpers tolerate nil so library code can log unconditionally.
func logger() LoggerInterface {
	return globalLogger
}

func LogDebug(msg string) {
	if l := logger(); l != nil {
		l.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogInfo(msg string) {
	if l := logger(); l != nil {
		l.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Infof(format, args...)
	}
}

func LogWarn(msg string) {
	if l := logger(); l != nil {
		l.Warn(msg)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string) {
	if l := logger(); l != nil {
		l.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := logger(); l != nil {
		l.Errorf(format, args...)
	}
}

package util

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel orders message severities for filtering.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[LogLevel]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// LogFormat selects how an output renders entries.
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Output is a log destination. Write is called once per entry; outputs
// serialize internally.
type Output interface {
	Write(entry LogEntry) error
	Close() error
}

// LogEntry is one rendered log record.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// LoggerInterface is the surface the LogX helpers and callers depend on.
type LoggerInterface interface {
	Debug(msg string, fields ...Field)
	Debugf(format string, args ...interface{})
	Info(msg string, fields ...Field)
	Infof(format string, args ...interface{})
	Warn(msg string, fields ...Field)
	Warnf(format string, args ...interface{})
	Error(msg string, fields ...Field)
	Errorf(format string, args ...interface{})
}

// Logger filters by level and fans entries out to its outputs.
type Logger struct {
	level   LogLevel
	mu      sync.RWMutex
	outputs []Output
}

// NewLogger builds a logger from CLI-level options. The log file is always
// attached when given; console output is added in debug mode. If no output
// can be attached, entries go to stderr rather than being dropped.
func NewLogger(levelStr string, logFile string, debugToConsole bool) *Logger {
	l := &Logger{level: parseLogLevel(levelStr)}

	if debugToConsole {
		l.outputs = append(l.outputs, NewConsoleOutput(os.Stderr, FormatText))
	}
	if logFile != "" {
		out, err := NewFileOutput(logFile, FormatText)
		if err != nil {
			log.Printf("cannot open log file %s: %v", logFile, err)
		} else {
			l.outputs = append(l.outputs, out)
		}
	}
	if len(l.outputs) == 0 {
		l.outputs = append(l.outputs, NewConsoleOutput(os.Stderr, FormatText))
	}
	return l
}

func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) emit(level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     levelNames[level],
		Message:   msg,
	}
	if len(fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(fields))
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, out := range l.outputs {
		if err := out.Write(entry); err != nil {
			log.Printf("log write failed: %v", err)
		}
	}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.emit(LevelDebug, msg, fields) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(LevelDebug, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Info(msg string, fields ...Field) { l.emit(LevelInfo, msg, fields) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(LevelInfo, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warn(msg string, fields ...Field) { l.emit(LevelWarn, msg, fields) }

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(LevelWarn, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Error(msg string, fields ...Field) { l.emit(LevelError, msg, fields) }

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(LevelError, fmt.Sprintf(format, args...), nil)
}

// Close closes every attached output. Used on daemon shutdown so the file
// output flushes.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, out := range l.outputs {
		if err := out.Close(); err != nil {
			log.Printf("log close failed: %v", err)
		}
	}
	l.outputs = nil
}

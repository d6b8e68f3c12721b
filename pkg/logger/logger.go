// Package logger provides structured JSON logging for the row writer and
// its export/archive helpers.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts string to Level
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// Fields represents additional structured fields for logging
type Fields map[string]interface{}

// Logger provides leveled, structured logging
type Logger struct {
	level         Level
	output        io.Writer
	formatJSON    bool
	enableCallers bool
	mu            sync.Mutex
}

// Entry represents a single log entry
type Entry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	SessionID string                 `json:"session_id,omitempty"`
	Component string                 `json:"component,omitempty"`
	Event     string                 `json:"event,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Caller    string                 `json:"caller,omitempty"`
}

// New creates a new Logger. output is "stdout", "stderr" or a file path;
// a file is opened in append mode.
func New(level string, format string, output string, enableCallers bool) (*Logger, error) {
	var out io.Writer
	switch output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
	}

	return &Logger{
		level:         ParseLevel(level),
		output:        out,
		formatJSON:    format == "json",
		enableCallers: enableCallers,
	}, nil
}

// NewWriterTo returns a logger writing to an arbitrary io.Writer, for tests
func NewWriterTo(level string, format string, out io.Writer) *Logger {
	return &Logger{
		level:      ParseLevel(level),
		output:     out,
		formatJSON: format == "json",
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{level: FatalLevel + 1, output: io.Discard}
}

func (l *Logger) write(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.formatJSON {
		data, _ := json.Marshal(entry)
		fmt.Fprintln(l.output, string(data))
		return
	}
	line := fmt.Sprintf("[%s] %s %s", entry.Timestamp, entry.Level, entry.Message)
	if entry.Event != "" {
		line = fmt.Sprintf("[%s] %s [%s] %s", entry.Timestamp, entry.Level, entry.Event, entry.Message)
	}
	if entry.SessionID != "" {
		line = fmt.Sprintf("%s sessionID=%s", line, entry.SessionID)
	}
	fmt.Fprintln(l.output, line)
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	if level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Fields:    fields,
	}
	if l.enableCallers {
		if _, file, line, ok := runtime.Caller(2); ok {
			entry.Caller = fmt.Sprintf("%s:%d", file, line)
		}
	}
	l.write(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(DebugLevel, msg, mergeFields(fields...))
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(InfoLevel, msg, mergeFields(fields...))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(WarnLevel, msg, mergeFields(fields...))
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Fields) {
	l.log(ErrorLevel, msg, mergeFields(fields...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(msg string, fields ...Fields) {
	l.log(FatalLevel, msg, mergeFields(fields...))
	os.Exit(1)
}

// SessionLogger wraps Logger with the identity of one writer session
type SessionLogger struct {
	logger    *Logger
	sessionID string
	component string
}

// WithSession returns a logger scoped to one writer session
func (l *Logger) WithSession(sessionID string) *SessionLogger {
	return &SessionLogger{logger: l, sessionID: sessionID}
}

// WithComponent sets the component name on the session logger
func (sl *SessionLogger) WithComponent(component string) *SessionLogger {
	sl.component = component
	return sl
}

func (sl *SessionLogger) log(level Level, event string, msg string, fields Fields, err error) {
	if level < sl.logger.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		SessionID: sl.sessionID,
		Component: sl.component,
		Event:     event,
		Message:   msg,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	sl.logger.write(entry)
}

// LogHeaderEmitted logs that a header line was written to a sink
func (sl *SessionLogger) LogHeaderEmitted(msg string, fields Fields) {
	sl.log(DebugLevel, "HeaderEmitted", msg, fields, nil)
}

// LogRowAppended logs one successful row dispatch
func (sl *SessionLogger) LogRowAppended(msg string, fields Fields) {
	sl.log(DebugLevel, "RowAppended", msg, fields, nil)
}

// LogRowFailed logs a failed row dispatch
func (sl *SessionLogger) LogRowFailed(msg string, err error, fields Fields) {
	sl.log(ErrorLevel, "RowFailed", msg, fields, err)
}

// LogExportStarted logs the start of an XLSX export
func (sl *SessionLogger) LogExportStarted(msg string, fields Fields) {
	sl.log(InfoLevel, "ExportStarted", msg, fields, nil)
}

// LogExportCompleted logs a finished XLSX export
func (sl *SessionLogger) LogExportCompleted(msg string, fields Fields) {
	sl.log(InfoLevel, "ExportCompleted", msg, fields, nil)
}

// LogArchiveUploadStarted logs the start of an archive upload
func (sl *SessionLogger) LogArchiveUploadStarted(msg string, fields Fields) {
	sl.log(InfoLevel, "ArchiveUploadStarted", msg, fields, nil)
}

// LogArchiveUploadCompleted logs a finished archive upload
func (sl *SessionLogger) LogArchiveUploadCompleted(msg string, fields Fields) {
	sl.log(InfoLevel, "ArchiveUploadCompleted", msg, fields, nil)
}

// LogArchiveUploadFailed logs a failed archive upload
func (sl *SessionLogger) LogArchiveUploadFailed(msg string, err error, fields Fields) {
	sl.log(ErrorLevel, "ArchiveUploadFailed", msg, fields, err)
}

// LogWarn logs a generic warning with event context
func (sl *SessionLogger) LogWarn(event string, msg string, fields Fields) {
	sl.log(WarnLevel, event, msg, fields, nil)
}

// LogDebug logs a generic debug message with event context
func (sl *SessionLogger) LogDebug(event string, msg string, fields Fields) {
	sl.log(DebugLevel, event, msg, fields, nil)
}

// mergeFields merges multiple Fields into one
func mergeFields(fields ...Fields) Fields {
	if len(fields) == 0 {
		return nil
	}
	result := Fields{}
	for _, f := range fields {
		for k, v := range f {
			result[k] = v
		}
	}
	return result
}

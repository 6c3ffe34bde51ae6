package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// ApplicationLogger defines the interface for structured application logging.
type ApplicationLogger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)
	ErrorWithError(ctx context.Context, err error, message string, fields Fields)
	LogPerformance(ctx context.Context, operation string, duration time.Duration, fields Fields)
	WithComponent(component string) ApplicationLogger
}

// Fields represents structured logging fields.
type Fields map[string]interface{}

// Config represents logger configuration.
type Config struct {
	Level           string
	Format          string // json, text
	Output          string // stdout, stderr, buffer (for testing)
	EnableColors    bool
	TimestampFormat string
}

// LogEntry represents the structure of log entries.
type LogEntry struct {
	Timestamp     string                 `json:"timestamp"`
	Level         string                 `json:"level"`
	Message       string                 `json:"message"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Component     string                 `json:"component,omitempty"`
	Operation     string                 `json:"operation,omitempty"`
	Duration      string                 `json:"duration,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Log level ordering for threshold filtering.
var levelOrder = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// applicationLoggerImpl implements ApplicationLogger.
type applicationLoggerImpl struct {
	config    Config
	component string
	buffer    *bytes.Buffer // For testing
	logger    *log.Logger
}

// NewApplicationLogger creates a new application logger.
func NewApplicationLogger(config Config) (ApplicationLogger, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	logger := &applicationLoggerImpl{config: config}

	switch config.Output {
	case "buffer":
		logger.buffer = &bytes.Buffer{}
		logger.logger = log.New(logger.buffer, "", 0)
	case "stderr":
		logger.logger = log.New(os.Stderr, "", 0)
	case "stdout":
		fallthrough
	default:
		logger.logger = log.New(os.Stdout, "", 0)
	}

	return logger, nil
}

// validateConfig validates logger configuration.
func validateConfig(config Config) error {
	if config.Level != "" {
		if _, ok := levelOrder[strings.ToUpper(config.Level)]; !ok {
			return fmt.Errorf("invalid log level: %s", config.Level)
		}
	}
	if config.Format != "" && config.Format != "json" && config.Format != "text" {
		return errors.New("log format must be json or text")
	}
	return nil
}

func (l *applicationLoggerImpl) Debug(ctx context.Context, message string, fields Fields) {
	l.emit(ctx, "DEBUG", message, "", fields)
}

func (l *applicationLoggerImpl) Info(ctx context.Context, message string, fields Fields) {
	l.emit(ctx, "INFO", message, "", fields)
}

func (l *applicationLoggerImpl) Warn(ctx context.Context, message string, fields Fields) {
	l.emit(ctx, "WARN", message, "", fields)
}

func (l *applicationLoggerImpl) Error(ctx context.Context, message string, fields Fields) {
	l.emit(ctx, "ERROR", message, "", fields)
}

func (l *applicationLoggerImpl) ErrorWithError(ctx context.Context, err error, message string, fields Fields) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	l.emit(ctx, "ERROR", message, errMsg, fields)
}

// LogPerformance logs an operation timing entry at INFO level.
func (l *applicationLoggerImpl) LogPerformance(
	ctx context.Context,
	operation string,
	duration time.Duration,
	fields Fields,
) {
	entry := l.buildEntry(ctx, "INFO", "operation completed", "", fields)
	entry.Operation = operation
	entry.Duration = duration.String()
	l.write(entry)
}

// WithComponent returns a logger bound to a component name.
func (l *applicationLoggerImpl) WithComponent(component string) ApplicationLogger {
	clone := *l
	clone.component = component
	return &clone
}

// Buffer returns the test buffer contents when the logger writes to a buffer.
func (l *applicationLoggerImpl) Buffer() string {
	if l.buffer == nil {
		return ""
	}
	return l.buffer.String()
}

func (l *applicationLoggerImpl) emit(ctx context.Context, level, message, errMsg string, fields Fields) {
	if !l.shouldLog(level) {
		return
	}
	l.write(l.buildEntry(ctx, level, message, errMsg, fields))
}

func (l *applicationLoggerImpl) shouldLog(level string) bool {
	threshold := "INFO"
	if l.config.Level != "" {
		threshold = strings.ToUpper(l.config.Level)
	}
	return levelOrder[level] >= levelOrder[threshold]
}

func (l *applicationLoggerImpl) buildEntry(
	ctx context.Context,
	level, message, errMsg string,
	fields Fields,
) LogEntry {
	tsFormat := l.config.TimestampFormat
	if tsFormat == "" {
		tsFormat = time.RFC3339Nano
	}

	entry := LogEntry{
		Timestamp:     time.Now().Format(tsFormat),
		Level:         level,
		Message:       message,
		CorrelationID: CorrelationIDFromContext(ctx),
		Component:     l.component,
		Error:         errMsg,
	}
	if len(fields) > 0 {
		entry.Metadata = map[string]interface{}(fields)
	}
	return entry
}

func (l *applicationLoggerImpl) write(entry LogEntry) {
	if l.config.Format == "text" {
		l.logger.Printf("%s %s [%s] %s %s", entry.Timestamp, entry.Level, entry.Component, entry.Message, entry.Error)
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Marshal failures only occur with unserializable metadata; degrade to text.
		l.logger.Printf("%s %s %s (log entry not serializable: %v)", entry.Timestamp, entry.Level, entry.Message, err)
		return
	}
	l.logger.Print(string(data))
}

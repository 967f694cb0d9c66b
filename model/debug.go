// Package model provides debugging and logging utilities for enhanced error context.
package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// LogLevelError logs errors only
	LogLevelError LogLevel = iota
	// LogLevelWarn adds warnings
	LogLevelWarn
	// LogLevelInfo adds informational messages
	LogLevelInfo
	// LogLevelDebug logs everything, including per-request diagnostics
	LogLevelDebug
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// parseLogLevel converts a string to a LogLevel
func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "info":
		return LogLevelInfo
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// DebugLogger provides enhanced logging capabilities for debugging. It writes
// to stderr so stdio MCP transports keep stdout clean for protocol frames.
type DebugLogger struct {
	level    LogLevel
	logger   *log.Logger
	enabled  bool
	jsonMode bool
}

// defaultLogger is the global logger instance
var defaultLogger *DebugLogger

func init() {
	defaultLogger = NewDebugLogger()
}

// NewDebugLogger creates a new debug logger with configuration from environment variables
func NewDebugLogger() *DebugLogger {
	logger := &DebugLogger{
		level:    LogLevelInfo,
		logger:   log.New(os.Stderr, "", 0),
		enabled:  false,
		jsonMode: false,
	}

	if debugMode := os.Getenv("FEEDLY_MCP_DEBUG"); debugMode != "" {
		logger.enabled = strings.ToLower(debugMode) == "true" || debugMode == "1"
	}
	if logLevel := os.Getenv("FEEDLY_MCP_LOG_LEVEL"); logLevel != "" {
		logger.SetLevel(parseLogLevel(logLevel))
	}
	if jsonMode := os.Getenv("FEEDLY_MCP_JSON_LOGS"); jsonMode != "" {
		logger.jsonMode = strings.ToLower(jsonMode) == "true" || jsonMode == "1"
	}

	return logger
}

// SetLevel sets the logging level
func (d *DebugLogger) SetLevel(level LogLevel) {
	d.level = level
}

// SetEnabled enables or disables debug logging
func (d *DebugLogger) SetEnabled(enabled bool) {
	d.enabled = enabled
}

// IsEnabled returns whether debug logging is enabled
func (d *DebugLogger) IsEnabled() bool {
	return d.enabled
}

// ShouldLog returns whether a message at the given level should be logged
func (d *DebugLogger) ShouldLog(level LogLevel) bool {
	return d.enabled && level <= d.level
}

// LogMessage represents a structured log message
type LogMessage struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Component string         `json:"component,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Error     string         `json:"error,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// log writes a log message at the specified level
func (d *DebugLogger) log(level LogLevel, message, component, operation string, err error, extra map[string]any) {
	if !d.ShouldLog(level) {
		return
	}

	logMsg := LogMessage{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Message:   message,
		Component: component,
		Operation: operation,
		Extra:     extra,
	}
	if err != nil {
		logMsg.Error = err.Error()
	}

	if d.jsonMode {
		d.logJSON(logMsg)
	} else {
		d.logText(logMsg)
	}
}

// logJSON outputs the log message in JSON format
func (d *DebugLogger) logJSON(msg LogMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		d.logger.Printf("ERROR: Failed to marshal log message to JSON: %v", err)
		return
	}
	d.logger.Println(string(data))
}

// logText outputs the log message in human-readable text format
func (d *DebugLogger) logText(msg LogMessage) {
	parts := []string{
		msg.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		fmt.Sprintf("[%s]", msg.Level),
		msg.Message,
	}

	if msg.Component != "" {
		parts = append(parts, fmt.Sprintf("component=%s", msg.Component))
	}
	if msg.Operation != "" {
		parts = append(parts, fmt.Sprintf("operation=%s", msg.Operation))
	}
	if msg.Error != "" {
		parts = append(parts, fmt.Sprintf("error=%q", msg.Error))
	}
	for key, value := range msg.Extra {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}

	d.logger.Println(strings.Join(parts, " "))
}

// Debug logs a debug-level message with optional context
func (d *DebugLogger) Debug(message, component, operation string, extra map[string]any) {
	d.log(LogLevelDebug, message, component, operation, nil, extra)
}

// Info logs an info-level message
func (d *DebugLogger) Info(message, component string) {
	d.log(LogLevelInfo, message, component, "", nil, nil)
}

// Warn logs a warn-level message
func (d *DebugLogger) Warn(message, component string, err error) {
	d.log(LogLevelWarn, message, component, "", err, nil)
}

// LogError logs a structured error with its full context
func (d *DebugLogger) LogError(fe *FeedlyError) {
	if fe == nil {
		return
	}
	extra := map[string]any{"error_type": string(fe.ErrorType), "error_id": fe.ID}
	if fe.HTTPStatus != 0 {
		extra["http_status"] = fe.HTTPStatus
	}
	d.log(LogLevelError, fe.Message, fe.Component, fe.Operation, fe.Cause, extra)
}

// GetLogger returns the global debug logger
func GetLogger() *DebugLogger {
	return defaultLogger
}

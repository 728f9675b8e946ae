package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Inputs and outputs
	FieldModel  = "model"
	FieldOutput = "output"
	FieldFile   = "file"

	// Protocol entities
	FieldMethod    = "method"
	FieldTypeName  = "type_name"
	FieldDirection = "direction"

	// Counts
	FieldCount         = "count"
	FieldStructures    = "structures"
	FieldEnums         = "enums"
	FieldAliases       = "aliases"
	FieldRequests      = "requests"
	FieldNotifications = "notifications"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("metamodel.watcher"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	fileLogger := logger.ChildLogger(baseLogger, "file", path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}

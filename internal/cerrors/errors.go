// Package cerrors provides the coded error types completers surfaces at its
// outer boundaries. Completer-internal failures are absorbed and never reach
// these types; configuration and terminal problems do.
package cerrors

import (
	"fmt"
)

// CompletersError is the base interface for all completers errors
type CompletersError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all completers errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// TerminalError represents errors while preparing or restoring the terminal
type TerminalError struct {
	baseError
}

// NewTerminalError creates a new terminal error
func NewTerminalError(message string, cause error) *TerminalError {
	return &TerminalError{
		baseError: baseError{
			code:    "TERMINAL_ERROR",
			message: message,
			cause:   cause,
		},
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

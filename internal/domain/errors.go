package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the user presses the interrupt key
	ErrCancelled = errors.New("prompt cancelled")
	// ErrSkipped is returned when the user declines to answer
	ErrSkipped = errors.New("prompt skipped")
)

// ConfigError reports invalid construction arguments
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// NewConfigError formats a configuration error
func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// CallbackError wraps a failure returned by caller-supplied code
type CallbackError struct {
	Callback string // validator, condition or creator
	Err      error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback failed: %v", e.Callback, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// WrapCallback wraps err as a CallbackError, returning nil for nil errors
func WrapCallback(callback string, err error) error {
	if err == nil {
		return nil
	}
	return &CallbackError{Callback: callback, Err: err}
}

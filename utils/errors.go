package utils

import (
	"fmt"
)

// UpstreamError represents a non-success response or transport failure from
// an external API (payment gateway or reseller). Message is safe to surface
// to the caller.
type UpstreamError struct {
	Service string `json:"service"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// Unwrap implements the unwrap interface
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(service, message string, err error) *UpstreamError {
	return &UpstreamError{
		Service: service,
		Message: message,
		Err:     err,
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

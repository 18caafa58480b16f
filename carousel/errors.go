package carousel

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrMissingAPIKey is returned by Fetch and Setup before any network call when no credential is set
	ErrMissingAPIKey = errors.New("an api key must be set")
	// ErrPlacementNotFound indicates the document has no element with the configured target id
	ErrPlacementNotFound = errors.New("placement element not found")
	// ErrNotInjected indicates activation was attempted before the wrapper markup was injected
	ErrNotInjected = errors.New("carousel markup has not been injected")
	// ErrEngineUnavailable indicates the carousel engine assets did not load
	ErrEngineUnavailable = errors.New("carousel engine unavailable")
)

// ConfigError represents an unusable widget configuration
type ConfigError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("carousel configuration error: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

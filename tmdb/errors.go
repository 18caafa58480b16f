package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrMissingAPIKey indicates that no read access token was supplied
	ErrMissingAPIKey = errors.New("tmdb API key is required")
	// ErrInvalidResponse indicates the API returned a body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from tmdb API")
)

// APIError represents a non-success TMDb API response
type APIError struct {
	StatusCode int
	// Code is TMDb's own status_code from the error body, 0 if absent
	Code    int
	Message string
	Body    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited checks if TMDb rejected the request for exceeding its rate limit
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

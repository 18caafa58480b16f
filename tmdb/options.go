package tmdb

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the trending endpoint root, the category is appended to it
const DefaultBaseURL = "https://api.themoviedb.org/3/trending/"

// DefaultLanguage is sent as the language query parameter
const DefaultLanguage = "en-US"

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the trending endpoint root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets the HTTP client timeout. A client passed through
// WithHTTPClient is copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			httpClient := *c.httpClient
			httpClient.Timeout = timeout
			c.httpClient = &httpClient
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLanguage sets the language query parameter.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// WithRateLimit limits outgoing requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

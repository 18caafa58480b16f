package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client represents a TMDb API client
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new TMDb client authenticating with the given read access token
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		language: DefaultLanguage,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if _, err := url.Parse(client.baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", ErrInvalidConfig, err)
	}

	return client, nil
}

// TrendingURL builds the request URL for a category and window.
// The base URL is joined verbatim, so it must end with a slash.
func (c *Client) TrendingURL(category MediaType, window TimeWindow) string {
	params := url.Values{}
	params.Set("language", c.language)
	return fmt.Sprintf("%s%s/%s?%s", c.baseURL, category, window, params.Encode())
}

// doRequest performs an authenticated GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, requestURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// newAPIError decodes the TMDb error envelope when there is one
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       string(body),
	}

	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.StatusMessage != "" {
		apiErr.Code = envelope.StatusCode
		apiErr.Message = envelope.StatusMessage
	}

	return apiErr
}

// Trending retrieves the trending items for a category in the given window
func (c *Client) Trending(ctx context.Context, category MediaType, window TimeWindow) ([]Item, error) {
	if window == "" {
		window = WindowDay
	}

	requestURL := c.TrendingURL(category, window)
	c.logger.Debug().
		Str("category", string(category)).
		Str("window", string(window)).
		Msg("Fetching trending items from TMDb")

	body, err := c.doRequest(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var response TrendingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.logger.Debug().
		Int("count", len(response.Results)).
		Int("total", response.TotalResults).
		Msg("Retrieved trending items from TMDb")

	return response.Results, nil
}

// TestConnection checks that the token is accepted by fetching today's trending listing
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Trending(ctx, MediaTypeAll, WindowDay)
	return err
}

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewClient("", logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient("test-key", logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, DefaultLanguage, client.language)
		assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
		assert.Nil(t, client.limiter)
	})
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("timeout after custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("test-key", logger, WithHTTPClient(customClient), WithTimeout(2*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, client.httpClient.Timeout)
		assert.Equal(t, 10*time.Second, customClient.Timeout, "the caller's client is left alone")
	})

	t.Run("with rate limit", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithRateLimit(40, 0))
		require.NoError(t, err)
		require.NotNil(t, client.limiter)
		assert.Equal(t, 1, client.limiter.Burst())

		client, err = NewClient("test-key", logger, WithRateLimit(0, 5))
		require.NoError(t, err)
		assert.Nil(t, client.limiter)
	})

	t.Run("with language", func(t *testing.T) {
		client, err := NewClient("test-key", logger, WithLanguage("de-DE"))
		require.NoError(t, err)
		assert.Equal(t, "https://api.themoviedb.org/3/trending/tv/week?language=de-DE",
			client.TrendingURL(MediaTypeTV, WindowWeek))
	})
}

func TestTrendingURL(t *testing.T) {
	client, err := NewClient("K", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://api.themoviedb.org/3/trending/movie/day?language=en-US",
		client.TrendingURL(MediaTypeMovie, WindowDay))
}

func TestTrending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/3/trending/movie/day", r.URL.Path)
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "Bearer K", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"A","poster_path":"/a.jpg"},{"id":2,"name":"B","poster_path":"/b.jpg","media_type":"tv"}],"total_pages":1,"total_results":2}`))
	}))
	defer server.Close()

	client, err := NewClient("K", zerolog.Nop(), WithBaseURL(server.URL+"/3/trending/"))
	require.NoError(t, err)

	items, err := client.Trending(context.Background(), MediaTypeMovie, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].DisplayTitle())
	assert.Equal(t, "/a.jpg", items[0].PosterPath)
	assert.Equal(t, "B", items[1].DisplayTitle())
	assert.Equal(t, MediaTypeTV, items[1].MediaType)
}

func TestTrendingFailure(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantMessage  string
		unauthorized bool
	}{
		{
			name:         "tmdb error envelope",
			status:       http.StatusUnauthorized,
			body:         `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key.","success":false}`,
			wantMessage:  "Invalid API key: You must be granted a valid key.",
			unauthorized: true,
		},
		{
			name:        "plain body",
			status:      http.StatusBadGateway,
			body:        "upstream down",
			wantMessage: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient("K", zerolog.Nop(), WithBaseURL(server.URL+"/"))
			require.NoError(t, err)

			items, err := client.Trending(context.Background(), MediaTypeMovie, WindowDay)
			require.Error(t, err)
			assert.Nil(t, items)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.unauthorized, apiErr.IsUnauthorized())
		})
	}
}

func TestTrendingInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":`))
	}))
	defer server.Close()

	client, err := NewClient("K", zerolog.Nop(), WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	_, err = client.Trending(context.Background(), MediaTypeMovie, WindowDay)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestTrendingContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewClient("K", zerolog.Nop(), WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Trending(ctx, MediaTypeMovie, WindowDay)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMediaType(t *testing.T) {
	mt, err := ParseMediaType(" TV ")
	require.NoError(t, err)
	assert.Equal(t, MediaTypeTV, mt)

	_, err = ParseMediaType("music")
	assert.Error(t, err)
}

func TestItem(t *testing.T) {
	movie := Item{Title: "Dune", Name: "ignored", ReleaseDate: "2021-09-15"}
	show := Item{Name: "Severance", FirstAirDate: "2022-02-17"}

	assert.Equal(t, "Dune", movie.DisplayTitle())
	assert.Equal(t, "2021-09-15", movie.Date())
	assert.Equal(t, "Severance", show.DisplayTitle())
	assert.Equal(t, "2022-02-17", show.Date())
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Message: "Not Found"}
		assert.Equal(t, "tmdb API error: status 404: Not Found", err.Error())

		err = &APIError{StatusCode: 500}
		assert.Equal(t, "tmdb API error: status 500", err.Error())
	})

	t.Run("classification", func(t *testing.T) {
		tests := []struct {
			code         int
			unauthorized bool
			notFound     bool
			rateLimited  bool
		}{
			{401, true, false, false},
			{403, true, false, false},
			{404, false, true, false},
			{429, false, false, true},
			{500, false, false, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.unauthorized, err.IsUnauthorized())
			assert.Equal(t, tt.notFound, err.IsNotFound())
			assert.Equal(t, tt.rateLimited, err.IsRateLimited())
		}
	})
}

package tmdb

import (
	"context"
)

// API defines the TMDb operations used by the carousel
type API interface {
	// Trending retrieves the trending items for a media category and time window
	Trending(ctx context.Context, category MediaType, window TimeWindow) ([]Item, error)
}

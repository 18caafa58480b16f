package tmdb

import (
	"fmt"
	"strings"
)

// MediaType is the endpoint category of a trending listing
type MediaType string

const (
	// MediaTypeAll lists movies, TV shows and people together
	MediaTypeAll MediaType = "all"
	// MediaTypeMovie represents a movie
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV represents a TV show
	MediaTypeTV MediaType = "tv"
	// MediaTypePerson represents a person
	MediaTypePerson MediaType = "person"
)

// Valid reports whether TMDb knows the category
func (mt MediaType) Valid() bool {
	switch mt {
	case MediaTypeAll, MediaTypeMovie, MediaTypeTV, MediaTypePerson:
		return true
	}
	return false
}

// ParseMediaType converts a category name into a MediaType
func ParseMediaType(s string) (MediaType, error) {
	mt := MediaType(strings.ToLower(strings.TrimSpace(s)))
	if !mt.Valid() {
		return "", fmt.Errorf("unknown media type %q (must be all, movie, tv or person)", s)
	}
	return mt, nil
}

// TimeWindow is the trending period
type TimeWindow string

const (
	// WindowDay lists what is trending today
	WindowDay TimeWindow = "day"
	// WindowWeek lists what is trending this week
	WindowWeek TimeWindow = "week"
)

// Valid reports whether the window is supported by TMDb
func (w TimeWindow) Valid() bool {
	return w == WindowDay || w == WindowWeek
}

// Item is one trending catalog entry.
//
// Only Title (or Name) and PosterPath are needed to render a slide, the
// remaining fields pass through untouched for filtering.
type Item struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title,omitempty"`
	Name             string    `json:"name,omitempty"`
	PosterPath       string    `json:"poster_path"`
	BackdropPath     string    `json:"backdrop_path,omitempty"`
	MediaType        MediaType `json:"media_type,omitempty"`
	Overview         string    `json:"overview,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	FirstAirDate     string    `json:"first_air_date,omitempty"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	Popularity       float64   `json:"popularity"`
	Adult            bool      `json:"adult"`
}

// DisplayTitle returns the best available title for the item.
// TV shows carry their title in Name.
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Date returns the release date for movies or the first air date for TV
func (i Item) Date() string {
	if i.ReleaseDate != "" {
		return i.ReleaseDate
	}
	return i.FirstAirDate
}

// TrendingResponse is the body of a trending listing
type TrendingResponse struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// errorResponse is the body TMDb sends with non-success status codes
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

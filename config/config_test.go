package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() *Config {
	return &Config{
		TMDb: TMDbConfig{
			APIKey:     "valid-api-key",
			BaseURL:    "https://api.themoviedb.org/3/trending/",
			TimeWindow: "day",
		},
		Carousels: []CarouselConfig{{Endpoint: "movie", TargetID: "tmdb"}},
		Engine:    EngineConfig{SlidesPerView: "auto"},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	path := writeConfig(t, `
tmdb:
  api_key: file-key
  time_window: week
  timeout: 5s
carousels:
  - id: trending-movies
    endpoint: Movie
    target_id: movies
    filter: acclaimed
  - endpoint: tv
    target_id: shows
filter:
  presets:
    acclaimed:
      description: Well rated only
      expression: VoteAverage >= 7.5
engine:
  space_between: 12
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.TMDb.APIKey)
	assert.Equal(t, "week", cfg.TMDb.TimeWindow)
	assert.Equal(t, "en-US", cfg.TMDb.Language)
	assert.Equal(t, 5*time.Second, cfg.TMDb.Timeout)
	require.Len(t, cfg.Carousels, 2)
	assert.Equal(t, []string{"movies", "shows"}, cfg.PlacementIDs())
	assert.Equal(t, "movie", cfg.Carousels[0].Endpoint, "endpoints are normalized")
	assert.Equal(t, "VoteAverage >= 7.5", cfg.FilterExpression(cfg.Carousels[0].Filter))

	engine := cfg.EngineOptions()
	assert.Equal(t, 12, engine.SpaceBetween)
	assert.Equal(t, "auto", engine.SlidesPerView)
	assert.Equal(t, 2500, engine.AutoplayDelay)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvironmentKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	path := writeConfig(t, "logging:\n  format: json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.TMDb.APIKey)
	require.Len(t, cfg.Carousels, 1, "a default carousel is added")
	assert.Equal(t, "movie", cfg.Carousels[0].Endpoint)
	assert.Equal(t, "tmdb", cfg.Carousels[0].TargetID)
}

func TestLoadMissingKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	path := writeConfig(t, "logging:\n  level: info\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "placeholder key",
			mutate:  func(c *Config) { c.TMDb.APIKey = "your-api-key-here" },
			wantErr: "tmdb.api_key",
		},
		{
			name:    "base url without slash",
			mutate:  func(c *Config) { c.TMDb.BaseURL = "https://api.themoviedb.org/3/trending" },
			wantErr: "must end with a slash",
		},
		{
			name:    "invalid time window",
			mutate:  func(c *Config) { c.TMDb.TimeWindow = "month" },
			wantErr: "invalid tmdb.time_window: month (must be 'day' or 'week')",
		},
		{
			name:    "unknown endpoint",
			mutate:  func(c *Config) { c.Carousels[0].Endpoint = "music" },
			wantErr: "carousels[0].endpoint",
		},
		{
			name: "duplicate target",
			mutate: func(c *Config) {
				c.Carousels = append(c.Carousels, CarouselConfig{Endpoint: "tv", TargetID: "tmdb"})
			},
			wantErr: "used by another carousel",
		},
		{
			name:    "empty target",
			mutate:  func(c *Config) { c.Carousels[0].TargetID = "" },
			wantErr: "carousels[0].target_id is required",
		},
		{
			name:    "target in wrapper namespace",
			mutate:  func(c *Config) { c.Carousels[0].TargetID = "tmdb-carousel-movies" },
			wantErr: "must not start with",
		},
		{
			name: "duplicate id",
			mutate: func(c *Config) {
				c.Carousels[0].ID = "row"
				c.Carousels = append(c.Carousels, CarouselConfig{ID: "row", Endpoint: "tv", TargetID: "shows"})
			},
			wantErr: `carousels[1].id "row" is used by another carousel`,
		},
		{
			name: "id equal to a target",
			mutate: func(c *Config) {
				c.Carousels[0].ID = "shows"
				c.Carousels = append(c.Carousels, CarouselConfig{Endpoint: "tv", TargetID: "shows"})
			},
			wantErr: `carousels[0].id "shows" equals a target_id`,
		},
		{
			name: "distinct ids",
			mutate: func(c *Config) {
				c.Carousels[0].ID = "movie-row"
				c.Carousels = append(c.Carousels, CarouselConfig{ID: "show-row", Endpoint: "TV", TargetID: "shows"})
			},
		},
		{
			name:    "invalid slides per view",
			mutate:  func(c *Config) { c.Engine.SlidesPerView = "lots" },
			wantErr: "engine.slides_per_view",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFilterExpression(t *testing.T) {
	cfg := validConfig()
	cfg.Filter = FilterConfig{
		DefaultExpression: "not Adult",
		Presets: map[string]PresetFilter{
			"recent": {Expression: "Year >= 2024"},
		},
	}

	assert.Equal(t, "not Adult", cfg.FilterExpression(""))
	assert.Equal(t, "Year >= 2024", cfg.FilterExpression("recent"))
	assert.Equal(t, "VoteCount > 100", cfg.FilterExpression("VoteCount > 100"))
}

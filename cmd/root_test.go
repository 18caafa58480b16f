package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/trendcarousel/config"
)

func testConfig() *config.Config {
	return &config.Config{
		TMDb: config.TMDbConfig{
			APIKey:     "K",
			BaseURL:    "https://api.themoviedb.org/3/trending/",
			TimeWindow: "day",
		},
		Carousels: []config.CarouselConfig{{Endpoint: "movie", TargetID: "tmdb"}},
		Engine:    config.EngineConfig{SlidesPerView: "auto"},
		Logging:   config.LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Cleanup(func() { cfg = nil })

	tests := []struct {
		name    string
		args    []string
		wantErr string
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name: "no flags",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "movie", c.Carousels[0].Endpoint)
				assert.Equal(t, "tmdb", c.Carousels[0].TargetID)
			},
		},
		{
			name: "endpoint and target",
			args: []string{"--endpoint", "TV", "--target", "shows", "--window", "week"},
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "tv", c.Carousels[0].Endpoint)
				assert.Equal(t, "shows", c.Carousels[0].TargetID)
				assert.Equal(t, "week", c.TMDb.TimeWindow)
			},
		},
		{
			name:    "unknown endpoint",
			args:    []string{"--endpoint", "bogus"},
			wantErr: "carousels[0].endpoint",
		},
		{
			name:    "empty target",
			args:    []string{"--target", ""},
			wantErr: "carousels[0].target_id is required",
		},
		{
			name:    "unknown window",
			args:    []string{"-w", "month"},
			wantErr: "tmdb.time_window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg = testConfig()
			cmd := &cobra.Command{Use: "render"}
			addOverrideFlags(cmd)
			require.NoError(t, cmd.ParseFlags(tt.args))

			err := applyFlagOverrides(cmd)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

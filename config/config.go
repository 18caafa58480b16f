package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/trendcarousel/carousel"
	"github.com/s0up4200/trendcarousel/tmdb"
)

// ErrNoAPIKey is returned when no TMDb token is configured
var ErrNoAPIKey = errors.New("tmdb.api_key must be set to a valid read access token")

// Load loads the configuration from file and environment.
// A missing config file is fine as long as the environment supplies the API key.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("TRENDCAROUSEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// TMDB_API_KEY is the name TMDb's own docs use
	_ = v.BindEnv("tmdb.api_key", "TRENDCAROUSEL_TMDB_API_KEY", "TMDB_API_KEY")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".trendcarousel"))
		}
		v.AddConfigPath("/etc/trendcarousel/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if len(cfg.Carousels) == 0 {
		cfg.Carousels = []CarouselConfig{{
			Endpoint: string(tmdb.MediaTypeMovie),
			TargetID: carousel.DefaultTargetID,
		}}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDb defaults
	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.language", tmdb.DefaultLanguage)
	v.SetDefault("tmdb.time_window", string(tmdb.WindowDay))
	v.SetDefault("tmdb.timeout", "30s")
	v.SetDefault("tmdb.rate_limit", 0)

	// Engine defaults
	engine := carousel.DefaultEngineOptions()
	v.SetDefault("engine.slides_per_view", engine.SlidesPerView)
	v.SetDefault("engine.centered_slides", engine.CenteredSlides)
	v.SetDefault("engine.space_between", engine.SpaceBetween)
	v.SetDefault("engine.autoplay_delay", engine.AutoplayDelay)
	v.SetDefault("engine.disable_on_interaction", engine.DisableOnInteraction)

	// Asset defaults
	v.SetDefault("assets.stylesheet_url", carousel.DefaultStylesheetURL)
	v.SetDefault("assets.script_url", carousel.DefaultScriptURL)
	v.SetDefault("assets.verify", false)

	// Page defaults
	v.SetDefault("page.title", "Trending")

	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDb.APIKey == "" || cfg.TMDb.APIKey == "your-api-key-here" {
		return ErrNoAPIKey
	}

	if !strings.HasSuffix(cfg.TMDb.BaseURL, "/") {
		return fmt.Errorf("tmdb.base_url must end with a slash: %s", cfg.TMDb.BaseURL)
	}

	if !tmdb.TimeWindow(cfg.TMDb.TimeWindow).Valid() {
		return fmt.Errorf("invalid tmdb.time_window: %s (must be 'day' or 'week')", cfg.TMDb.TimeWindow)
	}

	if cfg.TMDb.RateLimit < 0 {
		return fmt.Errorf("tmdb.rate_limit cannot be negative")
	}

	if err := validateCarousels(cfg.Carousels); err != nil {
		return err
	}

	if _, err := (carousel.EngineOptions{SlidesPerView: cfg.Engine.SlidesPerView}).MarshalJSON(); err != nil {
		return fmt.Errorf("engine.slides_per_view: %w", err)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// validateCarousels checks endpoints and ids and normalizes each endpoint to
// its TMDb spelling. Carousel ids and placement ids share the page's id
// space, so none of them may collide.
func validateCarousels(carousels []CarouselConfig) error {
	targets := make(map[string]int, len(carousels))
	for i := range carousels {
		c := &carousels[i]
		mt, err := tmdb.ParseMediaType(c.Endpoint)
		if err != nil {
			return fmt.Errorf("carousels[%d].endpoint: %w", i, err)
		}
		c.Endpoint = string(mt)

		if c.TargetID == "" {
			return fmt.Errorf("carousels[%d].target_id is required", i)
		}
		if strings.HasPrefix(c.TargetID, carousel.WrapperIDPrefix) {
			return fmt.Errorf("carousels[%d].target_id %q must not start with %q", i, c.TargetID, carousel.WrapperIDPrefix)
		}
		if _, ok := targets[c.TargetID]; ok {
			return fmt.Errorf("carousels[%d].target_id %q is used by another carousel", i, c.TargetID)
		}
		targets[c.TargetID] = i
	}

	ids := make(map[string]bool, len(carousels))
	for i, c := range carousels {
		if c.ID == "" {
			continue
		}
		wrapperID := carousel.WrapperID(c.ID)
		if ids[wrapperID] {
			return fmt.Errorf("carousels[%d].id %q is used by another carousel", i, c.ID)
		}
		ids[wrapperID] = true

		if _, ok := targets[c.ID]; ok {
			return fmt.Errorf("carousels[%d].id %q equals a target_id", i, c.ID)
		}
	}

	return nil
}

// Validate re-checks the configuration, e.g. after command line overrides
func (cfg *Config) Validate() error {
	return validate(cfg)
}

// FilterExpression resolves a carousel filter: a preset name, an expression,
// or the default expression when empty
func (cfg *Config) FilterExpression(name string) string {
	if name == "" {
		return cfg.Filter.DefaultExpression
	}
	if preset, ok := cfg.Filter.Presets[name]; ok {
		return preset.Expression
	}
	return name
}

// EngineOptions converts the engine section
func (cfg *Config) EngineOptions() carousel.EngineOptions {
	return carousel.EngineOptions{
		SlidesPerView:        cfg.Engine.SlidesPerView,
		CenteredSlides:       cfg.Engine.CenteredSlides,
		SpaceBetween:         cfg.Engine.SpaceBetween,
		AutoplayDelay:        cfg.Engine.AutoplayDelay,
		DisableOnInteraction: cfg.Engine.DisableOnInteraction,
	}
}

// PlacementIDs lists the target ids of all carousels in order
func (cfg *Config) PlacementIDs() []string {
	ids := make([]string, 0, len(cfg.Carousels))
	for _, c := range cfg.Carousels {
		ids = append(ids, c.TargetID)
	}
	return ids
}

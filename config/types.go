package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDb      TMDbConfig       `mapstructure:"tmdb"`
	Carousels []CarouselConfig `mapstructure:"carousels"`
	Engine    EngineConfig     `mapstructure:"engine"`
	Assets    AssetsConfig     `mapstructure:"assets"`
	Filter    FilterConfig     `mapstructure:"filter"`
	Page      PageConfig       `mapstructure:"page"`
	Server    ServerConfig     `mapstructure:"server"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// TMDbConfig holds TMDb API connection details
type TMDbConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Language   string        `mapstructure:"language"`
	TimeWindow string        `mapstructure:"time_window"`
	Timeout    time.Duration `mapstructure:"timeout"`
	// RateLimit is requests per second, 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit"`
}

// CarouselConfig describes one carousel on the page
type CarouselConfig struct {
	ID       string `mapstructure:"id"`
	Endpoint string `mapstructure:"endpoint"`
	TargetID string `mapstructure:"target_id"`
	// Filter is an expression or the name of a preset
	Filter string `mapstructure:"filter"`
}

// EngineConfig mirrors the Swiper constructor options
type EngineConfig struct {
	SlidesPerView        string `mapstructure:"slides_per_view"`
	CenteredSlides       bool   `mapstructure:"centered_slides"`
	SpaceBetween         int    `mapstructure:"space_between"`
	AutoplayDelay        int    `mapstructure:"autoplay_delay"`
	DisableOnInteraction bool   `mapstructure:"disable_on_interaction"`
}

// AssetsConfig points at the engine bundle
type AssetsConfig struct {
	StylesheetURL string `mapstructure:"stylesheet_url"`
	ScriptURL     string `mapstructure:"script_url"`
	Verify        bool   `mapstructure:"verify"`
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetFilter `mapstructure:"presets"`
}

// PresetFilter is a named filter expression
type PresetFilter struct {
	Description string `mapstructure:"description"`
	Expression  string `mapstructure:"expression"`
}

// PageConfig controls the host document
type PageConfig struct {
	Title string `mapstructure:"title"`
	// Template is an HTML file holding the placement elements, empty for a blank page
	Template string `mapstructure:"template"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

package carousel

import (
	"github.com/s0up4200/trendcarousel/filter"
	"github.com/s0up4200/trendcarousel/tmdb"
)

// DefaultTargetID is the placement element id used when none is configured
const DefaultTargetID = "tmdb"

// Options is the configuration intake. Empty fields are treated as absent
// and leave the stored value untouched.
type Options struct {
	// APIKey is the TMDb read access token sent as a bearer token
	APIKey string
	// Endpoint is the trending category (all, movie, tv or person), sent as given
	Endpoint string
	// TargetID is the id of the placement element
	TargetID   string
	Language   string
	TimeWindow string
}

// merge overwrites the present fields of o with those of in
func (o *Options) merge(in Options) {
	if in.APIKey != "" {
		o.APIKey = in.APIKey
	}
	if in.Endpoint != "" {
		o.Endpoint = in.Endpoint
	}
	if in.TargetID != "" {
		o.TargetID = in.TargetID
	}
	if in.Language != "" {
		o.Language = in.Language
	}
	if in.TimeWindow != "" {
		o.TimeWindow = in.TimeWindow
	}
}

// ClientFactory builds the TMDb client used for a fetch
type ClientFactory func(apiKey, language string) (tmdb.API, error)

// Option configures a Widget
type Option func(*Widget)

// WithID sets the widget id. Characters outside [A-Za-z0-9_-] are replaced.
// The wrapper element gets WrapperID(id) as its DOM id.
func WithID(id string) Option {
	return func(w *Widget) {
		if id != "" {
			w.id = sanitizeID(id)
		}
	}
}

// WithClientFactory replaces the TMDb client constructor
func WithClientFactory(factory ClientFactory) Option {
	return func(w *Widget) {
		if factory != nil {
			w.newClient = factory
		}
	}
}

// WithTMDbOptions passes options to the default TMDb client constructor
func WithTMDbOptions(opts ...tmdb.Option) Option {
	return func(w *Widget) {
		w.clientOpts = append(w.clientOpts, opts...)
	}
}

// WithAssetLoader replaces the engine asset loader
func WithAssetLoader(loader *AssetLoader) Option {
	return func(w *Widget) {
		if loader != nil {
			w.assets = loader
		}
	}
}

// WithEngineOptions sets the Swiper configuration
func WithEngineOptions(opts EngineOptions) Option {
	return func(w *Widget) {
		w.engine = opts
	}
}

// WithFilter restricts which collected items become slides
func WithFilter(f filter.Filter) Option {
	return func(w *Widget) {
		w.filter = f
	}
}

// WithDefaults seeds the stored configuration before the first Configure call
func WithDefaults(opts Options) Option {
	return func(w *Widget) {
		w.opts.merge(opts)
	}
}

func sanitizeID(id string) string {
	b := []byte(id)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			b[i] = '-'
		}
	}
	return string(b)
}

// Package carousel renders trending TMDb items as a Swiper carousel inside
// a host page.
//
// A Widget owns its configuration, its collected items and the placement it
// renders into, so several widgets can share one page.Document:
//
//	doc := page.Blank("Trending", "movies", "shows")
//	movies := carousel.New(doc, logger)
//	res, err := movies.Configure(ctx, carousel.Options{
//		APIKey:   token,
//		Endpoint: "movie",
//		TargetID: "movies",
//	})
//
// Every Configure call renders: fetch, inject styles and engine assets once
// per document, replace the widget's own wrapper in the placement element and
// activate the engine against it.
package carousel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/s0up4200/trendcarousel/filter"
	"github.com/s0up4200/trendcarousel/page"
	"github.com/s0up4200/trendcarousel/tmdb"
)

var widgetSeq atomic.Int64

// FetchResult is the outcome of one fetch. Items is empty on failure.
type FetchResult struct {
	Items []tmdb.Item
	Err   error
}

// OK reports whether the fetch succeeded, even with zero items
func (r FetchResult) OK() bool {
	return r.Err == nil
}

// RenderResult describes one render pass
type RenderResult struct {
	Fetch  FetchResult
	Slides int
	Target string
}

// Widget is one carousel bound to a document
type Widget struct {
	mu sync.Mutex

	id         string
	doc        *page.Document
	logger     zerolog.Logger
	newClient  ClientFactory
	clientOpts []tmdb.Option
	assets     *AssetLoader
	engine     EngineOptions
	filter     filter.Filter

	opts   Options
	items  []tmdb.Item
	target *page.Element
}

// New creates a widget rendering into doc
func New(doc *page.Document, logger zerolog.Logger, opts ...Option) *Widget {
	w := &Widget{
		id:     fmt.Sprintf("trending-%d", widgetSeq.Add(1)),
		doc:    doc,
		logger: logger,
		engine: DefaultEngineOptions(),
		opts: Options{
			Endpoint:   string(tmdb.MediaTypeMovie),
			TargetID:   DefaultTargetID,
			Language:   tmdb.DefaultLanguage,
			TimeWindow: string(tmdb.WindowDay),
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.assets == nil {
		w.assets = NewAssetLoader(logger)
	}
	if w.newClient == nil {
		w.newClient = func(apiKey, language string) (tmdb.API, error) {
			clientOpts := append([]tmdb.Option{tmdb.WithLanguage(language)}, w.clientOpts...)
			return tmdb.NewClient(apiKey, logger, clientOpts...)
		}
	}

	w.logger = w.logger.With().Str("carousel", w.id).Logger()
	return w
}

// ID returns the widget id carried in the wrapper's data-carousel attribute
func (w *Widget) ID() string {
	return w.id
}

// Options returns the stored configuration
func (w *Widget) Options() Options {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts
}

// Items returns a copy of the collected items in arrival order
func (w *Widget) Items() []tmdb.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]tmdb.Item(nil), w.items...)
}

// Configure applies the present fields of opts and renders
func (w *Widget) Configure(ctx context.Context, opts Options) (*RenderResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.opts.merge(opts)
	return w.render(ctx)
}

// Render runs the pipeline with the stored configuration
func (w *Widget) Render(ctx context.Context) (*RenderResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.render(ctx)
}

// Fetch retrieves trending items and appends them to the collection.
// A failed fetch leaves the collection unchanged.
func (w *Widget) Fetch(ctx context.Context) FetchResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fetch(ctx)
}

// Setup validates the configuration, fetches and resolves the placement
// element. A missing placement is not an error here, Render reports it.
func (w *Widget) Setup(ctx context.Context) (FetchResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setup(ctx)
}

// validate only checks that a credential is present. The endpoint and window
// are joined into the request URL as given, TMDb answers unknown ones.
func (w *Widget) validate() error {
	if w.opts.APIKey == "" {
		return &ConfigError{Field: "api_key", Err: ErrMissingAPIKey}
	}
	return nil
}

func (w *Widget) fetch(ctx context.Context) FetchResult {
	if err := w.validate(); err != nil {
		return FetchResult{Err: err}
	}

	client, err := w.newClient(w.opts.APIKey, w.opts.Language)
	if err != nil {
		return FetchResult{Err: fmt.Errorf("failed to create TMDb client: %w", err)}
	}

	items, err := client.Trending(ctx, tmdb.MediaType(w.opts.Endpoint), tmdb.TimeWindow(w.opts.TimeWindow))
	if err != nil {
		w.logger.Warn().Err(err).Str("endpoint", w.opts.Endpoint).Msg("Failed to fetch trending items")
		return FetchResult{Err: err}
	}

	w.items = append(w.items, items...)
	w.logger.Debug().
		Int("fetched", len(items)).
		Int("total", len(w.items)).
		Msg("Collected trending items")

	return FetchResult{Items: items}
}

func (w *Widget) setup(ctx context.Context) (FetchResult, error) {
	if err := w.validate(); err != nil {
		return FetchResult{Err: err}, err
	}

	result := w.fetch(ctx)

	previous := w.target
	w.target = w.doc.ElementByID(w.opts.TargetID)

	// A moved placement takes the wrapper along instead of leaving a stale copy.
	if previous != nil && (w.target == nil || previous.ID() != w.target.ID()) {
		previous.Remove(wrapperSelector(w.id))
		previous.Remove(fmt.Sprintf(`script[data-carousel-init="%s"]`, w.id))
	}

	return result, nil
}

func (w *Widget) render(ctx context.Context) (*RenderResult, error) {
	assets := w.assets.Load(ctx, w.doc)

	fetched, err := w.setup(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := InjectStyles(w.doc); err != nil {
		return nil, fmt.Errorf("failed to inject styles: %w", err)
	}

	slides := filter.Apply(w.filter, w.items)

	if w.target == nil {
		return nil, fmt.Errorf("%w: #%s", ErrPlacementNotFound, w.opts.TargetID)
	}
	w.target.ReplaceOrAppend(wrapperSelector(w.id), Wrap(w.id, Fragment(slides)))

	if err := Activate(ctx, w.target, w.id, assets, w.engine); err != nil {
		return nil, err
	}

	result := &RenderResult{
		Fetch:  fetched,
		Slides: len(slides),
		Target: w.opts.TargetID,
	}

	event := w.logger.Info()
	if !fetched.OK() {
		event = w.logger.Warn().Err(fetched.Err)
	}
	event.Int("slides", result.Slides).Str("target", result.Target).Msg("Rendered carousel")

	return result, nil
}

// IsConfigError reports whether err stems from an unusable configuration
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

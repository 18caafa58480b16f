// Package renderer turns a loaded configuration into a rendered page with
// one carousel per configured placement.
package renderer

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/trendcarousel/carousel"
	"github.com/s0up4200/trendcarousel/config"
	"github.com/s0up4200/trendcarousel/filter"
	"github.com/s0up4200/trendcarousel/page"
	"github.com/s0up4200/trendcarousel/tmdb"
)

// Builder renders pages from configuration. It is safe for concurrent use;
// every Build starts from a fresh document and fresh widgets.
type Builder struct {
	cfg     *config.Config
	client  *tmdb.Client
	filters []filter.Filter
	loader  *carousel.AssetLoader
	logger  zerolog.Logger
}

// Report is the outcome of one carousel in a build
type Report struct {
	ID       string
	Endpoint string
	TargetID string
	Result   *carousel.RenderResult
}

// NewBuilder compiles the configured filters and creates the shared TMDb client
func NewBuilder(cfg *config.Config, logger zerolog.Logger) (*Builder, error) {
	client, err := tmdb.NewClient(cfg.TMDb.APIKey, logger,
		tmdb.WithBaseURL(cfg.TMDb.BaseURL),
		tmdb.WithTimeout(cfg.TMDb.Timeout),
		tmdb.WithLanguage(cfg.TMDb.Language),
		tmdb.WithRateLimit(cfg.TMDb.RateLimit, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create TMDb client: %w", err)
	}

	filters := make([]filter.Filter, len(cfg.Carousels))
	for i, c := range cfg.Carousels {
		expression := cfg.FilterExpression(c.Filter)
		if expression == "" {
			continue
		}
		f, err := filter.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("invalid filter for carousel %q: %w", c.TargetID, err)
		}
		filters[i] = f
	}

	assetOpts := []carousel.AssetOption{
		carousel.WithAssetURLs(cfg.Assets.StylesheetURL, cfg.Assets.ScriptURL),
	}
	if cfg.Assets.Verify {
		assetOpts = append(assetOpts, carousel.WithVerification(nil))
	}

	return &Builder{
		cfg:     cfg,
		client:  client,
		filters: filters,
		loader:  carousel.NewAssetLoader(logger, assetOpts...),
		logger:  logger,
	}, nil
}

// Client returns the shared TMDb client
func (b *Builder) Client() *tmdb.Client {
	return b.client
}

// NewDocument loads the page template or builds a blank page with the configured placements
func (b *Builder) NewDocument() (*page.Document, error) {
	if b.cfg.Page.Template == "" {
		return page.Blank(b.cfg.Page.Title, b.cfg.PlacementIDs()...), nil
	}

	f, err := os.Open(b.cfg.Page.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to open page template: %w", err)
	}
	defer f.Close()

	return page.Parse(f)
}

// Build renders every configured carousel into a new document. Carousels
// render concurrently, each into its own placement.
func (b *Builder) Build(ctx context.Context) (*page.Document, []Report, error) {
	doc, err := b.NewDocument()
	if err != nil {
		return nil, nil, err
	}

	reports := make([]Report, len(b.cfg.Carousels))
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range b.cfg.Carousels {
		w := carousel.New(doc, b.logger,
			carousel.WithID(c.ID),
			carousel.WithClientFactory(b.clientFor),
			carousel.WithAssetLoader(b.loader),
			carousel.WithEngineOptions(b.cfg.EngineOptions()),
			carousel.WithFilter(b.filters[i]),
		)
		reports[i] = Report{ID: w.ID(), Endpoint: c.Endpoint, TargetID: c.TargetID}

		g.Go(func() error {
			res, err := w.Configure(ctx, carousel.Options{
				APIKey:     b.cfg.TMDb.APIKey,
				Endpoint:   c.Endpoint,
				TargetID:   c.TargetID,
				Language:   b.cfg.TMDb.Language,
				TimeWindow: b.cfg.TMDb.TimeWindow,
			})
			if err != nil {
				return fmt.Errorf("carousel %q: %w", c.TargetID, err)
			}
			reports[i].Result = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return doc, reports, nil
}

// clientFor reuses the shared client, and its rate limiter, for the configured credential
func (b *Builder) clientFor(apiKey, language string) (tmdb.API, error) {
	if apiKey == b.cfg.TMDb.APIKey && language == b.cfg.TMDb.Language {
		return b.client, nil
	}
	return tmdb.NewClient(apiKey, b.logger,
		tmdb.WithBaseURL(b.cfg.TMDb.BaseURL),
		tmdb.WithTimeout(b.cfg.TMDb.Timeout),
		tmdb.WithLanguage(language),
	)
}

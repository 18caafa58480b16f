package carousel

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/trendcarousel/page"
)

// Swiper 11 bundle served by jsDelivr
const (
	DefaultStylesheetURL = "https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.css"
	DefaultScriptURL     = "https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.js"
)

const engineScriptSelector = "script[data-carousel-engine]"

// AssetLoader requests the engine stylesheet and script for a document
type AssetLoader struct {
	stylesheetURL string
	scriptURL     string
	verify        bool
	httpClient    *http.Client
	logger        zerolog.Logger
}

// AssetOption configures an AssetLoader
type AssetOption func(*AssetLoader)

// WithAssetURLs overrides the engine stylesheet and script URLs
func WithAssetURLs(stylesheetURL, scriptURL string) AssetOption {
	return func(l *AssetLoader) {
		if stylesheetURL != "" {
			l.stylesheetURL = stylesheetURL
		}
		if scriptURL != "" {
			l.scriptURL = scriptURL
		}
	}
}

// WithVerification makes the handle wait for both assets to answer a HEAD request
func WithVerification(httpClient *http.Client) AssetOption {
	return func(l *AssetLoader) {
		l.verify = true
		if httpClient != nil {
			l.httpClient = httpClient
		}
	}
}

// NewAssetLoader creates a loader for the Swiper bundle
func NewAssetLoader(logger zerolog.Logger, opts ...AssetOption) *AssetLoader {
	l := &AssetLoader{
		stylesheetURL: DefaultStylesheetURL,
		scriptURL:     DefaultScriptURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		logger:        logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AssetHandle signals completion of an asset load
type AssetHandle struct {
	done chan struct{}
	err  error
}

func resolvedHandle(err error) *AssetHandle {
	h := &AssetHandle{done: make(chan struct{}), err: err}
	close(h.done)
	return h
}

// Done is closed once the assets are ready or failed
func (h *AssetHandle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the load completes or ctx ends
func (h *AssetHandle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load appends the engine link and script to the document head, once per
// document, and returns immediately. The returned handle completes when the
// tags are in place and, with verification enabled, both URLs responded.
func (l *AssetLoader) Load(ctx context.Context, doc *page.Document) *AssetHandle {
	markup := fmt.Sprintf(`<link rel="stylesheet" href="%s" data-carousel-engine-css=""/><script src="%s" data-carousel-engine=""></script>`,
		html.EscapeString(l.stylesheetURL), html.EscapeString(l.scriptURL))

	appended, err := doc.AppendHeadOnce(engineScriptSelector, markup)
	if err != nil {
		return resolvedHandle(fmt.Errorf("%w: %v", ErrEngineUnavailable, err))
	}
	if appended {
		l.logger.Debug().Str("script", l.scriptURL).Msg("Requested carousel engine assets")
	}

	if !l.verify {
		return resolvedHandle(nil)
	}

	h := &AssetHandle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.err = l.verifyAssets(ctx)
	}()
	return h
}

// verifyAssets checks both asset URLs concurrently
func (l *AssetLoader) verifyAssets(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, assetURL := range []string{l.stylesheetURL, l.scriptURL} {
		g.Go(func() error {
			return l.probe(ctx, assetURL)
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Warn().Err(err).Msg("Carousel engine assets are not reachable")
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return nil
}

func (l *AssetLoader) probe(ctx context.Context, assetURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, assetURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status code: %d", assetURL, resp.StatusCode)
	}
	return nil
}

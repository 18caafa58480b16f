// Package server serves rendered carousel pages over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/s0up4200/trendcarousel/carousel"
	"github.com/s0up4200/trendcarousel/tmdb"
)

// PageBuilder renders the carousel page
type PageBuilder interface {
	Build(ctx context.Context) (Page, error)
}

// Page is a rendered document
type Page interface {
	HTML() (string, error)
}

// PageBuilderFunc adapts a function to PageBuilder
type PageBuilderFunc func(ctx context.Context) (Page, error)

// Build calls f
func (f PageBuilderFunc) Build(ctx context.Context) (Page, error) {
	return f(ctx)
}

// Server serves the carousel page and a JSON view of the trending listings
type Server struct {
	pages  PageBuilder
	api    tmdb.API
	logger zerolog.Logger
}

// New creates a server
func New(pages PageBuilder, api tmdb.API, logger zerolog.Logger) *Server {
	return &Server{
		pages:  pages,
		api:    api,
		logger: logger,
	}
}

// Handler returns the chi router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/trending/{category}", s.handleTrending)

	return r
}

// requestLogger logs each request with zerolog
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := s.pages.Build(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to render carousel page")
		status := http.StatusInternalServerError
		if carousel.IsConfigError(err) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	markup, err := p.HTML()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to serialize carousel page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

type trendingResponse struct {
	Category string      `json:"category"`
	Window   string      `json:"window"`
	Results  []tmdb.Item `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	category, err := tmdb.ParseMediaType(chi.URLParam(r, "category"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	window := tmdb.TimeWindow(r.URL.Query().Get("window"))
	if window == "" {
		window = tmdb.WindowDay
	}
	if !window.Valid() {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "window must be day or week"})
		return
	}

	items, err := s.api.Trending(r.Context(), category, window)
	if err != nil {
		s.logger.Warn().Err(err).Str("category", string(category)).Msg("Trending lookup failed")
		status := http.StatusBadGateway
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimited() {
			status = http.StatusTooManyRequests
		}
		s.writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if items == nil {
		items = []tmdb.Item{}
	}
	s.writeJSON(w, http.StatusOK, trendingResponse{
		Category: string(category),
		Window:   string(window),
		Results:  items,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// ListenAndServe runs an HTTP server until ctx is canceled, then shuts it down
func ListenAndServe(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

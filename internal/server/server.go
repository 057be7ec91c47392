// Package server exposes the search pipeline over HTTP: a small embedded
// form page plus JSON endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/tablescout/tablescout/internal/finder"
	"github.com/tablescout/tablescout/internal/geoip"
	"github.com/tablescout/tablescout/internal/models"
)

// Searcher runs one restaurant search.
type Searcher interface {
	FindNearby(ctx context.Context, loc geoip.Location, p finder.Params, progress finder.Progress) ([]models.Listing, error)
}

// LocationResolver geolocates a network address.
type LocationResolver interface {
	Resolve(ctx context.Context, ip string) (*geoip.Location, error)
}

type Server struct {
	cfg      *models.Config
	searcher Searcher
	resolver LocationResolver
	log      zerolog.Logger
}

func New(cfg *models.Config, searcher Searcher, resolver LocationResolver, log zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		searcher: searcher,
		resolver: resolver,
		log:      log.With().Str("component", "server").Logger(),
	}
}

// Handler builds the route table with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.IndexHandler)
	mux.HandleFunc("GET /api/search", s.SearchHandler)
	mux.HandleFunc("GET /api/location", s.LocationHandler)

	allowed := s.cfg.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	return c.Handler(mux)
}

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr: s.cfg.ListenAddr,
		// Searches block on two upstream APIs plus pagination delays.
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		Handler:           s.Handler(),
	}
	s.log.Info().Str("addr", s.cfg.ListenAddr).Msg("server starting")
	return srv.ListenAndServe()
}

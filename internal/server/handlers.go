package server

import (
	_ "embed"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tablescout/tablescout/internal/finder"
	"github.com/tablescout/tablescout/internal/geoip"
)

//go:embed index.html
var indexPage []byte

// SearchRequest captures the query parameters of one search call; anything
// left out falls back to the server's configured defaults.
type SearchRequest struct {
	Params      finder.Params
	Lat         float64
	Lon         float64
	HasLocation bool
}

// ParseSearchRequest extracts and normalizes search filters from the URL query.
func ParseSearchRequest(query url.Values, defaults finder.Params) SearchRequest {
	req := SearchRequest{Params: defaults}

	if v := query.Get("budget"); v != "" {
		if budget, err := strconv.ParseFloat(v, 64); err == nil && budget > 0 {
			req.Params.Budget = budget
		}
	}
	if v := query.Get("radius"); v != "" {
		if radius, err := strconv.Atoi(v); err == nil && radius > 0 {
			req.Params.RadiusMeters = radius
		}
	}
	if v := query.Get("preferences"); v != "" {
		prefs := []string{}
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				prefs = append(prefs, p)
			}
		}
		req.Params.Preferences = prefs
	}
	if v := query.Get("exclude_no_price"); v != "" {
		req.Params.ExcludeNoPriceInfo = v == "true" || v == "1"
	}

	latStr, lonStr := query.Get("lat"), query.Get("lon")
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			req.Lat, req.Lon = lat, lon
			req.HasLocation = true
		}
	}
	return req
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

// SearchHandler runs the pipeline for one request. Location comes from
// explicit lat/lon parameters or, failing that, the caller's IP.
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	req := ParseSearchRequest(r.URL.Query(), finder.ParamsFromConfig(s.cfg))

	var loc *geoip.Location
	if req.HasLocation {
		loc = &geoip.Location{Lat: req.Lat, Lon: req.Lon}
	} else {
		resolved, err := s.resolver.Resolve(r.Context(), clientIP(r))
		if err != nil {
			s.log.Error().Err(err).Msg("location detection failed")
			http.Error(w, "Could not detect location", http.StatusBadGateway)
			return
		}
		loc = resolved
	}

	listings, err := s.searcher.FindNearby(r.Context(), *loc, req.Params, finder.NopProgress{})
	if err != nil {
		s.log.Error().Err(err).Msg("search failed")
		http.Error(w, "Something went wrong", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"location":    loc,
		"restaurants": listings,
	})
}

// LocationHandler previews the location the search would use for this caller.
func (s *Server) LocationHandler(w http.ResponseWriter, r *http.Request) {
	loc, err := s.resolver.Resolve(r.Context(), clientIP(r))
	if err != nil {
		s.log.Error().Err(err).Msg("location detection failed")
		http.Error(w, "Could not detect location", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loc)
}

// clientIP picks the caller's address, preferring the first forwarded hop.
// Loopback maps to "" so the geolocation service resolves the server's own
// public address during local development.
func clientIP(r *http.Request) string {
	ip := ""
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
	} else if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
		return ""
	}
	return ip
}

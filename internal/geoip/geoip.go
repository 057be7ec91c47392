package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "http://ip-api.com/json"

// Location is an approximate position derived from a network address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
}

// String renders "City, Region, Country" skipping empty parts.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Resolver looks up coordinates for an IP address.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("component", "geoip").Logger(),
	}
}

// Resolve geolocates ip. An empty ip resolves the caller's own address.
func (r *Resolver) Resolve(ctx context.Context, ip string) (*Location, error) {
	u := r.baseURL + "/" + ip + "?fields=status,message,country,regionName,city,lat,lon"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Status     string  `json:"status"`
		Message    string  `json:"message"`
		Country    string  `json:"country"`
		RegionName string  `json:"regionName"`
		City       string  `json:"city"`
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse geolocation response: %w", err)
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation lookup failed: %s", result.Message)
	}

	loc := &Location{
		Lat:     result.Lat,
		Lon:     result.Lon,
		City:    result.City,
		Region:  result.RegionName,
		Country: result.Country,
	}
	r.log.Debug().Str("ip", ip).Str("location", loc.String()).Msg("resolved location")
	return loc, nil
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tablescout/tablescout/internal/finder"
	"github.com/tablescout/tablescout/internal/geoip"
	"github.com/tablescout/tablescout/internal/models"
)

type stubSearcher struct {
	gotLoc    geoip.Location
	gotParams finder.Params
	listings  []models.Listing
	err       error
}

func (s *stubSearcher) FindNearby(ctx context.Context, loc geoip.Location, p finder.Params, progress finder.Progress) ([]models.Listing, error) {
	s.gotLoc = loc
	s.gotParams = p
	return s.listings, s.err
}

type stubResolver struct {
	loc   *geoip.Location
	err   error
	calls int
}

func (r *stubResolver) Resolve(ctx context.Context, ip string) (*geoip.Location, error) {
	r.calls++
	return r.loc, r.err
}

func testConfig() *models.Config {
	return &models.Config{
		Budget:             50,
		RadiusMeters:       2000,
		ExcludeNoPriceInfo: true,
		ListenAddr:         ":0",
	}
}

func TestParseSearchRequest(t *testing.T) {
	defaults := finder.Params{Budget: 50, RadiusMeters: 2000, ExcludeNoPriceInfo: true}

	tests := []struct {
		name    string
		query   string
		want    finder.Params
		wantLoc bool
	}{
		{
			name:  "empty query keeps defaults",
			query: "",
			want:  defaults,
		},
		{
			name:  "overrides",
			query: "budget=80&radius=5000&preferences=Halal,%20Seafood&exclude_no_price=false",
			want: finder.Params{
				Budget:             80,
				RadiusMeters:       5000,
				Preferences:        []string{"Halal", "Seafood"},
				ExcludeNoPriceInfo: false,
			},
		},
		{
			name:  "garbage values ignored",
			query: "budget=cheap&radius=-1",
			want:  defaults,
		},
		{
			name:    "explicit coordinates",
			query:   "lat=3.14&lon=101.6",
			want:    defaults,
			wantLoc: true,
		},
		{
			name:  "lat without lon ignored",
			query: "lat=3.14",
			want:  defaults,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tc.query)
			got := ParseSearchRequest(values, defaults)
			if !reflect.DeepEqual(got.Params, tc.want) {
				t.Fatalf("params = %+v, want %+v", got.Params, tc.want)
			}
			if got.HasLocation != tc.wantLoc {
				t.Fatalf("HasLocation = %v, want %v", got.HasLocation, tc.wantLoc)
			}
		})
	}
}

func TestSearchHandler(t *testing.T) {
	searcher := &stubSearcher{listings: []models.Listing{{Name: "A", Address: "N/A", MapsURL: "N/A"}}}
	resolver := &stubResolver{loc: &geoip.Location{Lat: 3.1, Lon: 101.6, City: "KL"}}
	s := New(testConfig(), searcher, resolver, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/search?budget=75", nil)
	req.RemoteAddr = "203.0.113.9:4711"
	rec := httptest.NewRecorder()
	s.SearchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if searcher.gotParams.Budget != 75 {
		t.Fatalf("budget = %v, want 75", searcher.gotParams.Budget)
	}
	if searcher.gotLoc.City != "KL" {
		t.Fatalf("location not taken from resolver: %+v", searcher.gotLoc)
	}

	var body struct {
		Location    geoip.Location   `json:"location"`
		Restaurants []models.Listing `json:"restaurants"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(body.Restaurants) != 1 || body.Restaurants[0].Name != "A" {
		t.Fatalf("restaurants = %+v", body.Restaurants)
	}
}

func TestSearchHandlerExplicitCoordinatesSkipResolver(t *testing.T) {
	searcher := &stubSearcher{}
	resolver := &stubResolver{err: errors.New("should not be called")}
	s := New(testConfig(), searcher, resolver, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/search?lat=3.14&lon=101.6", nil)
	rec := httptest.NewRecorder()
	s.SearchHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resolver.calls != 0 {
		t.Fatal("resolver called despite explicit coordinates")
	}
	if searcher.gotLoc.Lat != 3.14 || searcher.gotLoc.Lon != 101.6 {
		t.Fatalf("location = %+v", searcher.gotLoc)
	}
}

func TestSearchHandlerUpstreamFailure(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("places exploded")}
	resolver := &stubResolver{loc: &geoip.Location{}}
	s := New(testConfig(), searcher, resolver, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	s.SearchHandler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestLocationHandler(t *testing.T) {
	resolver := &stubResolver{loc: &geoip.Location{City: "Penang", Country: "Malaysia"}}
	s := New(testConfig(), &stubSearcher{}, resolver, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/location", nil)
	rec := httptest.NewRecorder()
	s.LocationHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var loc geoip.Location
	if err := json.Unmarshal(rec.Body.Bytes(), &loc); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if loc.City != "Penang" {
		t.Fatalf("city = %q", loc.City)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"plain remote addr", "203.0.113.9:4711", "", "203.0.113.9"},
		{"forwarded wins", "10.0.0.1:80", "198.51.100.7, 10.0.0.1", "198.51.100.7"},
		{"loopback means self", "127.0.0.1:5000", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := clientIP(req); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

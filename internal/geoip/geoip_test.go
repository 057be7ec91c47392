package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Resolver{
		baseURL:    srv.URL,
		httpClient: srv.Client(),
		log:        zerolog.Nop(),
	}
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/8.8.8.8" {
			t.Errorf("path = %q, want /8.8.8.8", req.URL.Path)
		}
		w.Write([]byte(`{"status":"success","country":"Malaysia","regionName":"Kuala Lumpur","city":"Kuala Lumpur","lat":3.139,"lon":101.6869}`))
	})

	loc, err := r.Resolve(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Lat != 3.139 || loc.Lon != 101.6869 {
		t.Fatalf("coordinates = %v,%v", loc.Lat, loc.Lon)
	}
	if got := loc.String(); got != "Kuala Lumpur, Kuala Lumpur, Malaysia" {
		t.Fatalf("String() = %q", got)
	}
}

func TestResolveSelf(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			t.Errorf("path = %q, want /", req.URL.Path)
		}
		w.Write([]byte(`{"status":"success","lat":1,"lon":2}`))
	})
	if _, err := r.Resolve(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveFailure(t *testing.T) {
	r := newTestResolver(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	})
	if _, err := r.Resolve(context.Background(), "10.0.0.1"); err == nil {
		t.Fatal("expected error for fail status")
	}
}

func TestLocationStringSkipsEmptyParts(t *testing.T) {
	loc := Location{City: "Penang", Country: "Malaysia"}
	if got := loc.String(); got != "Penang, Malaysia" {
		t.Fatalf("String() = %q", got)
	}
}

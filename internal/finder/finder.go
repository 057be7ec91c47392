// Package finder runs the search pipeline: nearby search, price filtering,
// photo and review enrichment, capped at three listings per request.
package finder

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	"github.com/rs/zerolog"

	"github.com/tablescout/tablescout/internal/geoip"
	"github.com/tablescout/tablescout/internal/models"
	"github.com/tablescout/tablescout/internal/places"
	"github.com/tablescout/tablescout/internal/reviews"
)

// maxListings caps how many enriched listings one search returns.
const maxListings = 3

// PlacesAPI is the slice of the places client the pipeline needs.
type PlacesAPI interface {
	NearbySearch(ctx context.Context, req places.NearbySearchRequest) (*places.SearchPage, error)
	Details(ctx context.Context, placeID string) (*places.PlaceDetails, error)
}

// Params are the per-search knobs. The HTTP surface overrides them per
// request; the CLI fills them from config.
type Params struct {
	Budget             float64
	RadiusMeters       int
	Preferences        []string
	ExcludeNoPriceInfo bool
}

func ParamsFromConfig(cfg *models.Config) Params {
	return Params{
		Budget:             cfg.Budget,
		RadiusMeters:       cfg.RadiusMeters,
		Preferences:        cfg.Preferences,
		ExcludeNoPriceInfo: cfg.ExcludeNoPriceInfo,
	}
}

// Keyword joins the preference tags onto the base restaurant search term.
func (p Params) Keyword() string {
	if len(p.Preferences) == 0 {
		return "restaurant"
	}
	return "restaurant " + strings.Join(p.Preferences, " ")
}

// Finder orchestrates one search end to end.
type Finder struct {
	apiKey     string
	places     PlacesAPI
	summarizer reviews.Summarizer
	log        zerolog.Logger

	// pageDelay is how long the upstream needs before a next-page token
	// becomes valid.
	pageDelay time.Duration
}

func New(cfg *models.Config, placesAPI PlacesAPI, summarizer reviews.Summarizer, log zerolog.Logger) *Finder {
	delay := cfg.PageDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Finder{
		apiKey:     cfg.GoogleAPIKey,
		places:     placesAPI,
		summarizer: summarizer,
		log:        log.With().Str("component", "finder").Logger(),
		pageDelay:  delay,
	}
}

// FindNearby walks nearby-search pages around loc, keeps candidates fitting
// the budget, enriches them, and stops at three listings or exhausted pages.
// Search and detail errors clear the progress sink and propagate; review
// summarization never fails a listing.
func (f *Finder) FindNearby(ctx context.Context, loc geoip.Location, p Params, progress Progress) ([]models.Listing, error) {
	log := f.log.With().Str("search_id", cuid.New()).Logger()
	log.Info().
		Float64("budget", p.Budget).
		Int("radius_meters", p.RadiusMeters).
		Strs("preferences", p.Preferences).
		Bool("exclude_no_price_info", p.ExcludeNoPriceInfo).
		Msg("starting restaurant search")

	progress.Describe("Searching for nearby restaurants...")
	progress.Set(30)

	req := places.NearbySearchRequest{
		Lat:          loc.Lat,
		Lng:          loc.Lon,
		RadiusMeters: p.RadiusMeters,
		Keyword:      p.Keyword(),
	}

	page, err := f.places.NearbySearch(ctx, req)
	if err != nil {
		progress.Clear()
		return nil, err
	}

	listings := make([]models.Listing, 0, maxListings)
	processed := 0

	for page != nil && len(page.Results) > 0 && len(listings) < maxListings {
		progress.Describe("Processing restaurant details...")

		for _, cand := range page.Results {
			progress.Set(min(50+processed*10, 90))

			details, err := f.places.Details(ctx, cand.PlaceID)
			if err != nil {
				progress.Clear()
				return nil, err
			}
			processed++

			listing, ok := f.buildListing(ctx, details, p, log)
			if !ok {
				continue
			}
			listings = append(listings, listing)
			if len(listings) >= maxListings {
				break
			}
		}

		if len(listings) >= maxListings || page.NextPageToken == "" {
			break
		}
		page, err = f.nextPage(ctx, req, page.NextPageToken)
		if err != nil {
			progress.Clear()
			return nil, err
		}
	}

	progress.Describe("Search complete")
	progress.Set(100)
	progress.Clear()

	log.Info().Int("listings", len(listings)).Int("candidates_processed", processed).Msg("search finished")
	return listings, nil
}

// buildListing applies the price cutoff and enriches a qualifying candidate.
// The second return is false when the candidate was filtered out.
func (f *Finder) buildListing(ctx context.Context, details *places.PlaceDetails, p Params, log zerolog.Logger) (models.Listing, bool) {
	listing := models.Listing{
		Name:       orNA(details.Name),
		Address:    orNA(details.Vicinity),
		PriceLevel: details.PriceLevel,
		Rating:     details.Rating,
		MapsURL:    orNA(details.URL),
	}

	if estimatedCost, priced := listing.EstimatedCost(); priced {
		if estimatedCost > p.Budget {
			log.Debug().Str("name", listing.Name).Float64("estimated_cost", estimatedCost).Msg("dropped: over budget")
			return models.Listing{}, false
		}
	} else if p.ExcludeNoPriceInfo {
		log.Debug().Str("name", listing.Name).Msg("dropped: no price info")
		return models.Listing{}, false
	}

	if len(details.Photos) > 0 {
		listing.PhotoURL = places.PhotoURL(details.Photos[0].PhotoReference, f.apiKey)
	}
	if details.OpeningHours != nil {
		listing.OpeningHours = details.OpeningHours.WeekdayText
	}

	texts := make([]string, 0, len(details.Reviews))
	for _, rev := range details.Reviews {
		texts = append(texts, rev.Text)
	}
	listing.Summary = f.summarizer.Summarize(ctx, texts)

	return listing, true
}

// nextPage waits out the token warm-up and fetches the following page. A
// token that is still not valid after the delay gets exactly one more wait.
func (f *Finder) nextPage(ctx context.Context, req places.NearbySearchRequest, token string) (*places.SearchPage, error) {
	req.PageToken = token

	if err := sleepCtx(ctx, f.pageDelay); err != nil {
		return nil, err
	}
	page, err := f.places.NearbySearch(ctx, req)
	if errors.Is(err, places.ErrPageTokenNotReady) {
		if err := sleepCtx(ctx, f.pageDelay); err != nil {
			return nil, err
		}
		page, err = f.places.NearbySearch(ctx, req)
	}
	return page, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

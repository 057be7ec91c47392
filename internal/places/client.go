package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// detailFields matches the field set the pipeline consumes; anything more
// costs extra per request.
const detailFields = "price_level,opening_hours,name,vicinity,rating,reviews,photo,url"

// ErrPageTokenNotReady means a next-page token was used before the upstream
// made it valid. Retrying after a short delay is expected to succeed.
var ErrPageTokenNotReady = errors.New("next page token not ready yet")

type NearbySearchRequest struct {
	Lat          float64
	Lng          float64
	RadiusMeters int
	Keyword      string
	PageToken    string
}

// Client talks to the Places REST endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With().Str("component", "places").Logger(),
	}
}

// NearbySearch returns one page of restaurant candidates around a point.
// Pass the previous page's NextPageToken to continue; everything else in the
// request must stay identical between pages.
func (c *Client) NearbySearch(ctx context.Context, req NearbySearchRequest) (*SearchPage, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", req.Lat, req.Lng))
	q.Set("radius", strconv.Itoa(req.RadiusMeters))
	q.Set("keyword", req.Keyword)
	q.Set("type", "restaurant")
	if req.PageToken != "" {
		q.Set("pagetoken", req.PageToken)
	}
	q.Set("key", c.apiKey)

	var page SearchPage
	if err := c.get(ctx, "/place/nearbysearch/json", q, &page); err != nil {
		return nil, err
	}

	switch page.Status {
	case "OK", "ZERO_RESULTS":
	case "INVALID_REQUEST":
		if req.PageToken != "" {
			return nil, ErrPageTokenNotReady
		}
		return nil, statusError("nearby search", page.Status, page.ErrorMessage)
	default:
		return nil, statusError("nearby search", page.Status, page.ErrorMessage)
	}

	c.log.Debug().
		Int("results", len(page.Results)).
		Bool("has_next_page", page.NextPageToken != "").
		Msg("nearby search page fetched")
	return &page, nil
}

// Details fetches the full record for one place.
func (c *Client) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("key", c.apiKey)

	var env detailsEnvelope
	if err := c.get(ctx, "/place/details/json", q, &env); err != nil {
		return nil, err
	}
	if env.Status != "OK" {
		return nil, statusError("place details", env.Status, env.ErrorMessage)
	}
	return &env.Result, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places request failed: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse places response: %w", err)
	}
	return nil
}

func statusError(op, status, message string) error {
	if message != "" {
		return fmt.Errorf("%s failed: %s (%s)", op, status, message)
	}
	return fmt.Errorf("%s failed: %s", op, status)
}

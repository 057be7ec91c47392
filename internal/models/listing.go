package models

// Summary is the outcome of review summarization. Degraded marks the text as
// a fixed fallback rather than model output; the listing is shown either way.
type Summary struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded,omitempty"`
}

// Listing is one enriched restaurant record handed to the presentation
// layer. It lives for a single search and is never persisted.
type Listing struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	PriceLevel   *int     `json:"price_level,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
	OpeningHours []string `json:"opening_hours"`
	MapsURL      string   `json:"maps_url"`
	Summary      Summary  `json:"review_summary"`
}

// EstimatedCost converts the ordinal price level into a dollar figure using
// the flat $25-per-level heuristic. Returns 0 and false when the upstream
// record carries no price level.
func (l *Listing) EstimatedCost() (float64, bool) {
	if l.PriceLevel == nil {
		return 0, false
	}
	return float64(*l.PriceLevel) * CostPerPriceLevel, true
}

// CostPerPriceLevel is a rough dollars-per-person estimate for one unit of
// the 0-4 price scale.
const CostPerPriceLevel = 25.0

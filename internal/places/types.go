package places

// Wire types for the Places nearby-search and place-details endpoints.
// Optional numeric fields are pointers so "absent" survives decoding; a
// price_level of 0 is a real value, not a missing one.

type SearchPage struct {
	Results       []Candidate `json:"results"`
	NextPageToken string      `json:"next_page_token"`
	Status        string      `json:"status"`
	ErrorMessage  string      `json:"error_message"`
}

type Candidate struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Rating   *float64 `json:"rating,omitempty"`
	Types    []string `json:"types,omitempty"`
}

type detailsEnvelope struct {
	Result       PlaceDetails `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
}

type PlaceDetails struct {
	Name         string        `json:"name"`
	Vicinity     string        `json:"vicinity"`
	PriceLevel   *int          `json:"price_level,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	Reviews      []Review      `json:"reviews,omitempty"`
	Photos       []Photo       `json:"photos,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty"`
	URL          string        `json:"url"`
}

type Review struct {
	AuthorName              string `json:"author_name"`
	Rating                  int    `json:"rating"`
	Text                    string `json:"text"`
	RelativeTimeDescription string `json:"relative_time_description"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type OpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

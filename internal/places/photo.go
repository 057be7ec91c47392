package places

import (
	"fmt"
	"net/url"
)

const photoMaxWidth = 400

// PhotoURL builds a directly fetchable image URL for a photo reference.
// Pure string construction; the image itself is fetched by whoever renders
// the listing. Returns "" when there is no reference.
func PhotoURL(photoReference, apiKey string) string {
	if photoReference == "" {
		return ""
	}
	return fmt.Sprintf("https://maps.googleapis.com/maps/api/place/photo?maxwidth=%d&photo_reference=%s&key=%s",
		photoMaxWidth, url.QueryEscape(photoReference), url.QueryEscape(apiKey))
}

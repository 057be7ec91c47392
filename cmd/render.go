package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/tablescout/tablescout/internal/models"
)

// renderListings prints result cards the way the web UI lays them out.
func renderListings(w io.Writer, listings []models.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "\U0001F50D No restaurants found matching your criteria. Try adjusting your preferences or increasing the radius.")
		return
	}

	fmt.Fprintf(w, "\n\U0001F374 Recommended Restaurants (%d)\n", len(listings))
	for _, l := range listings {
		fmt.Fprintf(w, "\n%s\n%s\n", l.Name, strings.Repeat("-", len(l.Name)))
		fmt.Fprintf(w, "  Address:     %s\n", l.Address)
		fmt.Fprintf(w, "  Price Level: %s\n", priceGlyphs(l.PriceLevel))
		fmt.Fprintf(w, "  Rating:      %s\n", ratingGlyphs(l.Rating))
		fmt.Fprintf(w, "  Map:         %s\n", l.MapsURL)
		if l.PhotoURL != "" {
			fmt.Fprintf(w, "  Photo:       %s\n", l.PhotoURL)
		}
		if len(l.OpeningHours) > 0 {
			fmt.Fprintln(w, "  Opening Hours:")
			for _, h := range l.OpeningHours {
				fmt.Fprintf(w, "    %s\n", h)
			}
		}
		fmt.Fprintf(w, "  Reviews:     %s\n", l.Summary.Text)
	}
}

func priceGlyphs(priceLevel *int) string {
	if priceLevel == nil {
		return "N/A"
	}
	if *priceLevel == 0 {
		return "free"
	}
	return strings.Repeat("$", *priceLevel)
}

func ratingGlyphs(rating *float64) string {
	if rating == nil {
		return "N/A"
	}
	return fmt.Sprintf("%s (%.1f)", strings.Repeat("⭐", int(*rating)), *rating)
}

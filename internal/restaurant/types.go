// Package restaurant defines the domain shapes shared by the places gateway,
// the conversation flow, and the favorites store.
package restaurant

import (
	"fmt"
	"net/url"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Restaurant is a single nearby-search result. It lives only for the duration
// of one search flow; persisted favorites use their own record type.
type Restaurant struct {
	Name        string
	Address     string
	PlaceID     string
	Rating      float64
	RatingCount int
	ImageURL    string
	MapURL      string
	ListingURL  string
	Location    Coordinates
}

// Details is the on-demand place detail view.
type Details struct {
	Name        string
	Address     string
	Rating      float64
	RatingCount int
	WeekdayText []string
	Location    Coordinates
}

// ListingURL builds the Google Maps listing link for a place ID.
func ListingURL(placeID string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + placeID
}

// DirectionsURL builds the Google Maps navigation link for a destination.
func DirectionsURL(loc Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%f,%f", loc.Lat, loc.Lng)
}

// UberURL builds a ride-hailing deep link to the given destination.
func UberURL(loc Coordinates, name string) string {
	return fmt.Sprintf(
		"https://m.uber.com/ul/?action=setPickup&pickup=my_location&dropoff[latitude]=%f&dropoff[longitude]=%f&dropoff[nickname]=%s",
		loc.Lat, loc.Lng, url.QueryEscape(name),
	)
}

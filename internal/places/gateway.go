// Package places wraps the Google Maps Platform calls used by the search
// flow: geocoding, nearby search, and place details. Responses are
// normalized into the domain's restaurant shapes and ranked before return.
package places

import (
	"context"
	"time"

	"log/slog"

	"googlemaps.github.io/maps"

	"github.com/pg56714/line-dine-mapper/internal/logger"
	"github.com/pg56714/line-dine-mapper/internal/restaurant"
)

// All provider calls ask for traditional-Chinese responses, matching the
// bot's audience.
const language = "zh-TW"

// Gateway issues Google Maps calls and normalizes their responses.
type Gateway struct {
	client *maps.Client
	photos *photoResolver
}

// NewGateway builds a gateway for the given API key. An empty key still
// yields a working gateway whose calls are rejected upstream; missing
// credentials must not prevent the bot from starting.
func NewGateway(apiKey string) (*Gateway, error) {
	key := apiKey
	if key == "" {
		// The maps client refuses to construct without a key.
		key = "unconfigured"
	}
	c, err := maps.NewClient(maps.WithAPIKey(key))
	if err != nil {
		return nil, err
	}
	return &Gateway{
		client: c,
		photos: newPhotoResolver(apiKey),
	}, nil
}

// Geocode resolves a free-form address to coordinates. A provider failure is
// treated identically to zero results: both report "not found" to the caller
// and the upstream error never escapes this boundary.
func (g *Gateway) Geocode(ctx context.Context, address string) (restaurant.Coordinates, bool) {
	start := time.Now()
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: language,
	})
	if err != nil {
		logger.SVCPlaces.Warn("geocode failed",
			slog.String("event", "places.geocode"),
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return restaurant.Coordinates{}, false
	}
	if len(results) == 0 {
		logger.SVCPlaces.Debug("geocode miss",
			slog.String("event", "places.geocode"),
			slog.String("status", "skip"),
			slog.Duration("duration", logger.Took(start)),
		)
		return restaurant.Coordinates{}, false
	}
	loc := results[0].Geometry.Location
	logger.SVCPlaces.Debug("geocode hit",
		slog.String("event", "places.geocode"),
		slog.String("status", "ok"),
		slog.Duration("duration", logger.Took(start)),
	)
	return restaurant.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, true
}

// SearchNearby runs one nearby-search call for restaurants around loc,
// enriches each result with a best-effort canonical photo URL, and returns
// the list ranked by review count then rating.
func (g *Gateway) SearchNearby(ctx context.Context, loc restaurant.Coordinates, radiusMeters int) ([]restaurant.Restaurant, error) {
	start := time.Now()
	resp, err := g.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: loc.Lat, Lng: loc.Lng},
		Radius:   uint(radiusMeters),
		Type:     maps.PlaceTypeRestaurant,
		Language: language,
	})
	if err != nil {
		logger.SVCPlaces.Error("nearby search failed",
			slog.String("event", "places.search"),
			slog.String("status", "fail"),
			slog.Int("radius", radiusMeters),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, err
	}

	out := make([]restaurant.Restaurant, 0, len(resp.Results))
	for _, r := range resp.Results {
		imageURL := ""
		if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
			// Best-effort: a failed photo lookup yields an empty URL and
			// never aborts the search.
			imageURL = g.photos.Resolve(ctx, r.Photos[0].PhotoReference)
		}
		pos := restaurant.Coordinates{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		}
		out = append(out, restaurant.Restaurant{
			Name:        r.Name,
			Address:     CleanAddress(r.Vicinity),
			PlaceID:     r.PlaceID,
			Rating:      float64(r.Rating),
			RatingCount: r.UserRatingsTotal,
			ImageURL:    imageURL,
			MapURL:      restaurant.DirectionsURL(pos),
			ListingURL:  restaurant.ListingURL(r.PlaceID),
			Location:    pos,
		})
	}

	Rank(out)
	logger.SVCPlaces.Info("nearby search",
		slog.String("event", "places.search"),
		slog.String("status", "ok"),
		slog.Int("radius", radiusMeters),
		slog.Int("count", len(out)),
		slog.Duration("duration", logger.Took(start)),
	)
	return out, nil
}

// Details fetches the on-demand detail view for one place. Transport
// failures are returned to the caller and are fatal to the current step.
func (g *Gateway) Details(ctx context.Context, placeID string) (restaurant.Details, error) {
	start := time.Now()
	resp, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: language,
	})
	if err != nil {
		logger.SVCPlaces.Error("details failed",
			slog.String("event", "places.details"),
			slog.String("status", "fail"),
			slog.String("place_id", placeID),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return restaurant.Details{}, err
	}

	var weekday []string
	if resp.OpeningHours != nil {
		weekday = resp.OpeningHours.WeekdayText
	}
	logger.SVCPlaces.Debug("details",
		slog.String("event", "places.details"),
		slog.String("status", "ok"),
		slog.String("place_id", placeID),
		slog.Duration("duration", logger.Took(start)),
	)
	return restaurant.Details{
		Name:        resp.Name,
		Address:     CleanAddress(resp.FormattedAddress),
		Rating:      float64(resp.Rating),
		RatingCount: resp.UserRatingsTotal,
		WeekdayText: weekday,
		Location: restaurant.Coordinates{
			Lat: resp.Geometry.Location.Lat,
			Lng: resp.Geometry.Location.Lng,
		},
	}, nil
}

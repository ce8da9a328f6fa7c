package places

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/pg56714/line-dine-mapper/internal/logger"
)

const (
	photoBaseURL  = "https://maps.googleapis.com/maps/api/place/photo"
	photoMaxWidth = "400"
)

// photoResolver turns a photo reference into the canonical image URL the
// Place Photo endpoint redirects to. LINE carousel thumbnails need a stable
// https URL, not the keyed API endpoint.
type photoResolver struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newPhotoResolver(apiKey string) *photoResolver {
	return &photoResolver{
		apiKey:  apiKey,
		baseURL: photoBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Capture the redirect instead of following it.
				return http.ErrUseLastResponse
			},
		},
	}
}

// Resolve returns the redirect target for a photo reference, or "" when the
// lookup fails in any way. Failures are logged at debug level only; one
// broken photo must never fail a whole search.
func (p *photoResolver) Resolve(ctx context.Context, photoReference string) string {
	q := url.Values{}
	q.Set("maxwidth", photoMaxWidth)
	q.Set("photoreference", photoReference)
	q.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return ""
	}
	resp, err := p.client.Do(req)
	if err != nil {
		logger.SVCPlaces.Debug("photo lookup failed",
			slog.String("event", "places.photo"),
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return ""
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound {
		logger.SVCPlaces.Debug("photo lookup unexpected status",
			slog.String("event", "places.photo"),
			slog.String("status", "fail"),
			slog.Int("http_code", resp.StatusCode),
		)
		return ""
	}
	return resp.Header.Get("Location")
}

package flow

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseCount extracts a positive integer from free-form user input. All
// non-digit runes are stripped first, so "前 10 間" and "10" parse the same.
func ParseCount(input string) (int, bool) {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

const (
	actionAddToFavorites = "add_to_favorites"
	actionDelete         = "delete"
)

// postbackPayload is the decoded form of a button payload.
type postbackPayload struct {
	Action       string
	RestaurantID string
}

// postbackData encodes a button payload. Encoding and parsing share the
// query-string format, so payloads round-trip through LINE unchanged.
func postbackData(action, restaurantID string) string {
	v := url.Values{}
	v.Set("action", action)
	v.Set("restaurantId", restaurantID)
	return v.Encode()
}

func parsePostback(data string) (postbackPayload, error) {
	v, err := url.ParseQuery(data)
	if err != nil {
		return postbackPayload{}, err
	}
	return postbackPayload{
		Action:       v.Get("action"),
		RestaurantID: v.Get("restaurantId"),
	}, nil
}

// Package flow implements the conversational state machine for the
// restaurant search and favorites scripts. It consumes transport-neutral
// events, mutates per-user sessions, and renders outbound LINE message
// batches through its collaborator ports.
package flow

import "github.com/pg56714/line-dine-mapper/internal/restaurant"

// Kind discriminates inbound event payloads.
type Kind int

const (
	// KindText is a plain text message.
	KindText Kind = iota
	// KindLocation is a shared location message.
	KindLocation
	// KindPostback is a button action carrying a key-value payload.
	KindPostback
	// KindFollow fires when the user adds the bot as a friend.
	KindFollow
)

// Event is one inbound webhook event, already resolved to a user and a
// single-use reply token by the transport adapter.
type Event struct {
	Kind       Kind
	UserID     string
	ReplyToken string
	// WebhookEventID is LINE's delivery identifier, used for log correlation.
	WebhookEventID string

	// Text is set for KindText.
	Text string
	// Location is set for KindLocation.
	Location restaurant.Coordinates
	// PostbackData is the raw query-encoded payload for KindPostback.
	PostbackData string
}

// Package session holds per-user conversation state for the restaurant
// discovery flows. One Session exists per LINE user; the Manager keys
// sessions by user ID and serializes all access per key, so concurrent
// webhook deliveries can never interleave updates to one conversation.
package session

import (
	"github.com/pg56714/line-dine-mapper/internal/favorites"
	"github.com/pg56714/line-dine-mapper/internal/restaurant"
)

// Stage identifies the current step within the active flow.
type Stage string

const (
	// StageIdle indicates there is no active conversation with the user.
	StageIdle Stage = "idle"
	// StageAwaitingLocation waits for an address or a location message.
	StageAwaitingLocation Stage = "awaiting_location"
	// StageAwaitingTopCount waits for the desired result-list length.
	StageAwaitingTopCount Stage = "awaiting_top_count"
	// StageAwaitingRadius waits for the search radius in meters.
	StageAwaitingRadius Stage = "awaiting_radius"
	// StageBrowsingResults pages through candidates and accepts selections.
	StageBrowsingResults Stage = "browsing_results"
	// StageEnded terminates the conversation until the next global command.
	StageEnded Stage = "ended"
)

// Flow identifies which conversational script a bare "continue" refers to.
type Flow string

const (
	FlowNone      Flow = "none"
	FlowSearch    Flow = "search"
	FlowFavorites Flow = "favorites"
)

// PageSize is the number of items shown per pagination step, for both the
// search-result and the favorites list.
const PageSize = 4

// Session stores conversation state for one user.
//
// Candidates and Favorites are flow-scoped snapshots: they are filled when
// the corresponding flow starts and paged over by their own cursor. Each
// cursor is monotonic and never exceeds its list length. LastSelected is
// meaningful only while Stage is StageBrowsingResults.
type Session struct {
	Stage Stage
	Flow  Flow

	Location *restaurant.Coordinates
	TopCount int
	Radius   int

	Candidates []restaurant.Restaurant
	Cursor     int

	Favorites []favorites.Favorite
	FavCursor int

	LastSelected *restaurant.Restaurant
}

// Reset returns the session to its initial values. Every flow (re)start goes
// through here, which also clears LastSelected.
func (s *Session) Reset() {
	*s = Session{Stage: StageIdle, Flow: FlowNone}
}

// Ended reports whether the conversation was explicitly terminated.
func (s *Session) Ended() bool {
	return s.Stage == StageEnded
}

// End terminates the conversation while keeping the session record around;
// the next global command supersedes it via Reset.
func (s *Session) End() {
	s.Stage = StageEnded
}

package flow

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/pg56714/line-dine-mapper/internal/favorites"
	"github.com/pg56714/line-dine-mapper/internal/logger"
	"github.com/pg56714/line-dine-mapper/internal/restaurant"
	"github.com/pg56714/line-dine-mapper/internal/session"
)

// Places is the slice of the places gateway the flow depends on.
type Places interface {
	Geocode(ctx context.Context, address string) (restaurant.Coordinates, bool)
	SearchNearby(ctx context.Context, loc restaurant.Coordinates, radiusMeters int) ([]restaurant.Restaurant, error)
	Details(ctx context.Context, placeID string) (restaurant.Details, error)
}

// Favorites is the slice of the favorites store the flow depends on.
type Favorites interface {
	ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error)
	Add(ctx context.Context, f favorites.Favorite) error
	Delete(ctx context.Context, userID, restaurantID string) (int64, error)
	Exists(ctx context.Context, userID, restaurantID string) (bool, error)
}

// Replier sends outbound messages. Reply consumes the event's single-use
// reply token; Push targets the user directly and is used when the token was
// already spent.
type Replier interface {
	Reply(ctx context.Context, replyToken string, msgs []messaging_api.MessageInterface) error
	Push(ctx context.Context, userID string, msgs []messaging_api.MessageInterface) error
	ShowLoading(ctx context.Context, userID string) error
}

// Orchestrator drives the conversation state machine. It is safe for
// concurrent use; the session manager serializes events per user.
type Orchestrator struct {
	sessions *session.Manager
	places   Places
	store    Favorites
	replier  Replier

	// intn is swappable so tests can pin random picks.
	intn func(n int) int
}

// New wires the orchestrator with its collaborators.
func New(sessions *session.Manager, places Places, store Favorites, replier Replier) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		places:   places,
		store:    store,
		replier:  replier,
		intn:     rand.Intn,
	}
}

// HandleEvent processes one inbound event under the user's session lock and
// emits a single summary log line for the whole handling.
func (o *Orchestrator) HandleEvent(ctx context.Context, ev Event) error {
	start := time.Now()
	handler := handlerName(ev)
	ctx = logger.WithHandler(ctx, handler)
	err := o.sessions.Do(ev.UserID, func(s *session.Session) error {
		return o.dispatch(ctx, ev, s)
	})

	status := "ok"
	attrs := []slog.Attr{
		slog.String("handler", handler),
		slog.String("user_id", ev.UserID),
		slog.Duration("duration", logger.Took(start)),
	}
	level := slog.LevelInfo
	if err != nil {
		status = "fail"
		level = slog.LevelError
		attrs = append(attrs, slog.String("err", err.Error()))
	}
	attrs = append(attrs, slog.String("status", status))
	logger.LogEvent(ctx, logger.FLOW, level, "handler.handled", attrs...)
	return err
}

func handlerName(ev Event) string {
	switch ev.Kind {
	case KindFollow:
		return "follow"
	case KindLocation:
		return "location"
	case KindPostback:
		pb, err := parsePostback(ev.PostbackData)
		if err != nil || pb.Action == "" {
			return "postback"
		}
		return "postback." + pb.Action
	}
	switch strings.TrimSpace(ev.Text) {
	case CmdStartSearch:
		return "text.start_search"
	case CmdViewFavorites:
		return "text.view_favorites"
	case CmdRandomFavorite:
		return "text.random_favorite"
	case CmdEnd:
		return "text.end"
	case CmdContinue:
		return "text.continue"
	}
	return "text.input"
}

func (o *Orchestrator) dispatch(ctx context.Context, ev Event, s *session.Session) error {
	switch ev.Kind {
	case KindFollow:
		return o.replier.Reply(ctx, ev.ReplyToken, greetingMessages())
	case KindPostback:
		return o.handlePostback(ctx, ev, s)
	case KindLocation:
		return o.handleLocation(ctx, ev, s)
	default:
		return o.handleText(ctx, ev, s)
	}
}

func (o *Orchestrator) handleText(ctx context.Context, ev Event, s *session.Session) error {
	text := strings.TrimSpace(ev.Text)

	// Global commands supersede whatever flow is active, ended or not.
	switch text {
	case CmdStartSearch:
		return o.startSearch(ctx, ev, s)
	case CmdViewFavorites:
		return o.startFavorites(ctx, ev, s)
	case CmdRandomFavorite:
		return o.randomFavorite(ctx, ev, s)
	case CmdEnd:
		s.End()
		return o.replier.Reply(ctx, ev.ReplyToken, closingMessages())
	case CmdContinue:
		return o.continueFlow(ctx, ev, s)
	}

	switch s.Stage {
	case session.StageAwaitingLocation:
		return o.acceptAddress(ctx, ev, s, text)
	case session.StageAwaitingTopCount:
		return o.acceptTopCount(ctx, ev, s, text)
	case session.StageAwaitingRadius:
		return o.acceptRadius(ctx, ev, s, text)
	case session.StageBrowsingResults:
		if s.Flow == session.FlowSearch {
			return o.acceptSelection(ctx, ev, s, text)
		}
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgFavMorePrompt))
	case session.StageEnded:
		return o.replier.Reply(ctx, ev.ReplyToken, closingMessages())
	}
	// Idle: point the user at the commands.
	return o.replier.Reply(ctx, ev.ReplyToken, greetingMessages())
}

func (o *Orchestrator) startSearch(ctx context.Context, ev Event, s *session.Session) error {
	s.Reset()
	s.Flow = session.FlowSearch
	s.Stage = session.StageAwaitingLocation
	return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgAskLocation))
}

func (o *Orchestrator) startFavorites(ctx context.Context, ev Event, s *session.Session) error {
	s.Reset()
	favs, err := o.store.ListByUser(ctx, ev.UserID)
	if err != nil {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgPersistError))
	}
	if len(favs) == 0 {
		s.End()
		return o.replier.Reply(ctx, ev.ReplyToken, commandMessages(msgNoFavorites))
	}
	s.Flow = session.FlowFavorites
	s.Stage = session.StageBrowsingResults
	s.Favorites = favs
	s.FavCursor = 0
	return o.sendFavoritesPage(ctx, ev, s)
}

func (o *Orchestrator) randomFavorite(ctx context.Context, ev Event, s *session.Session) error {
	s.Reset()
	favs, err := o.store.ListByUser(ctx, ev.UserID)
	if err != nil {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgPersistError))
	}
	s.End()
	if len(favs) == 0 {
		return o.replier.Reply(ctx, ev.ReplyToken, commandMessages(msgNoFavorites))
	}
	pick := favs[o.intn(len(favs))]
	return o.replier.Reply(ctx, ev.ReplyToken, renderFavoriteDetail(pick))
}

func (o *Orchestrator) continueFlow(ctx context.Context, ev Event, s *session.Session) error {
	if s.Stage == session.StageBrowsingResults {
		switch s.Flow {
		case session.FlowSearch:
			if s.Cursor >= len(s.Candidates) {
				return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNoMoreResults))
			}
			return o.replier.Reply(ctx, ev.ReplyToken, renderResultsPage(s))
		case session.FlowFavorites:
			if s.FavCursor >= len(s.Favorites) {
				s.End()
				return o.replier.Reply(ctx, ev.ReplyToken, commandMessages(msgNoMoreFavs))
			}
			return o.sendFavoritesPage(ctx, ev, s)
		}
	}
	return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNothingToDo))
}

func (o *Orchestrator) sendFavoritesPage(ctx context.Context, ev Event, s *session.Session) error {
	msgs := renderFavoritesPage(s)
	if s.FavCursor >= len(s.Favorites) {
		s.End()
	}
	return o.replier.Reply(ctx, ev.ReplyToken, msgs)
}

func (o *Orchestrator) acceptAddress(ctx context.Context, ev Event, s *session.Session, text string) error {
	loc, ok := o.places.Geocode(ctx, text)
	if !ok {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgGeocodeMiss))
	}
	s.Location = &loc
	s.Stage = session.StageAwaitingTopCount
	return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgAskTopCount))
}

func (o *Orchestrator) acceptTopCount(ctx context.Context, ev Event, s *session.Session, text string) error {
	n, ok := ParseCount(text)
	if !ok {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgBadTopCount))
	}
	s.TopCount = n
	s.Stage = session.StageAwaitingRadius
	return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgAskRadius))
}

func (o *Orchestrator) acceptRadius(ctx context.Context, ev Event, s *session.Session, text string) error {
	n, ok := ParseCount(text)
	if !ok {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgBadRadius))
	}
	s.Radius = n

	results, err := o.places.SearchNearby(ctx, *s.Location, n)
	if err != nil {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgProviderError))
	}
	if len(results) == 0 {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNoResults))
	}
	if len(results) > s.TopCount {
		results = results[:s.TopCount]
	}
	s.Candidates = results
	s.Cursor = 0
	s.Stage = session.StageBrowsingResults
	return o.replier.Reply(ctx, ev.ReplyToken, renderResultsPage(s))
}

func (o *Orchestrator) acceptSelection(ctx context.Context, ev Event, s *session.Session, text string) error {
	var idx int
	if text == CmdRandom {
		idx = o.intn(len(s.Candidates))
	} else {
		n, ok := ParseCount(text)
		if !ok || n > len(s.Candidates) {
			return o.replier.Reply(ctx, ev.ReplyToken,
				textMessages(fmt.Sprintf(msgBadSelection, len(s.Candidates))))
		}
		idx = n - 1
	}

	r := s.Candidates[idx]
	d, err := o.places.Details(ctx, r.PlaceID)
	if err != nil {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgProviderError))
	}
	s.LastSelected = &s.Candidates[idx]
	return o.replier.Reply(ctx, ev.ReplyToken, renderDetail(d, r.PlaceID))
}

func (o *Orchestrator) handleLocation(ctx context.Context, ev Event, s *session.Session) error {
	if s.Stage == session.StageAwaitingLocation && s.Flow == session.FlowSearch {
		loc := ev.Location
		s.Location = &loc
		s.Stage = session.StageAwaitingTopCount
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgAskTopCount))
	}
	if s.Ended() {
		return o.replier.Reply(ctx, ev.ReplyToken, closingMessages())
	}
	return o.replier.Reply(ctx, ev.ReplyToken, greetingMessages())
}

func (o *Orchestrator) handlePostback(ctx context.Context, ev Event, s *session.Session) error {
	pb, err := parsePostback(ev.PostbackData)
	if err != nil {
		logger.FLOW.Warn("malformed postback payload",
			slog.String("event", "flow.postback_malformed"),
			slog.String("user_id", ev.UserID),
			slog.String("err", err.Error()),
		)
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNothingToDo))
	}
	switch pb.Action {
	case actionAddToFavorites:
		return o.addFavorite(ctx, ev, s, pb.RestaurantID)
	case actionDelete:
		return o.deleteFavorite(ctx, ev, s, pb.RestaurantID)
	}
	logger.FLOW.Warn("unknown postback action",
		slog.String("event", "flow.postback_unknown"),
		slog.String("user_id", ev.UserID),
		slog.String("action", pb.Action),
	)
	return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNothingToDo))
}

// addFavorite spends the reply token on an acknowledgement and pushes the
// final outcome, since the persistence round-trip can outlive the token's
// usefulness as perceived latency.
func (o *Orchestrator) addFavorite(ctx context.Context, ev Event, s *session.Session, restaurantID string) error {
	if s.Stage != session.StageBrowsingResults || s.LastSelected == nil || s.LastSelected.PlaceID != restaurantID {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNothingToDo))
	}
	r := *s.LastSelected

	if err := o.replier.ShowLoading(ctx, ev.UserID); err != nil {
		logger.FLOW.Debug("loading animation failed",
			slog.String("event", "flow.loading"),
			slog.String("user_id", ev.UserID),
			slog.String("err", err.Error()),
		)
	}
	if err := o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgFavProcessing)); err != nil {
		return err
	}

	exists, err := o.store.Exists(ctx, ev.UserID, r.PlaceID)
	if err != nil {
		return o.replier.Push(ctx, ev.UserID, textMessages(msgPersistError))
	}
	if exists {
		s.End()
		return o.replier.Push(ctx, ev.UserID, commandMessages(msgFavExists))
	}

	err = o.store.Add(ctx, favorites.Favorite{
		LineUserID:   ev.UserID,
		RestaurantID: r.PlaceID,
		Name:         r.Name,
		Address:      r.Address,
		Latitude:     r.Location.Lat,
		Longitude:    r.Location.Lng,
	})
	if err != nil {
		return o.replier.Push(ctx, ev.UserID, textMessages(msgPersistError))
	}
	s.End()
	return o.replier.Push(ctx, ev.UserID, commandMessages(msgFavAdded))
}

func (o *Orchestrator) deleteFavorite(ctx context.Context, ev Event, s *session.Session, restaurantID string) error {
	if restaurantID == "" {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgNothingToDo))
	}
	affected, err := o.store.Delete(ctx, ev.UserID, restaurantID)
	if err != nil {
		return o.replier.Reply(ctx, ev.ReplyToken, textMessages(msgPersistError))
	}
	s.End()
	if affected == 0 {
		return o.replier.Reply(ctx, ev.ReplyToken, commandMessages(msgFavDeleteMiss))
	}
	return o.replier.Reply(ctx, ev.ReplyToken, commandMessages(msgFavDeleted))
}

package line

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"log/slog"

	"github.com/pg56714/line-dine-mapper/internal/flow"
	"github.com/pg56714/line-dine-mapper/internal/logger"
	"github.com/pg56714/line-dine-mapper/internal/restaurant"
)

// Handler processes one decoded webhook event.
type Handler interface {
	HandleEvent(ctx context.Context, ev flow.Event) error
}

// Server is the webhook endpoint. It verifies the channel signature, decodes
// the delivery, and hands events to the flow handler grouped per user:
// different users run concurrently, one user's events run in order.
type Server struct {
	channelSecret string
	flows         Handler
	engine        *gin.Engine
}

// NewServer builds the HTTP surface around the given flow handler.
func NewServer(channelSecret, webhookPath string, flows Handler) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		channelSecret: channelSecret,
		flows:         flows,
		engine:        engine,
	}
	engine.GET("/", s.health)
	engine.POST(webhookPath, s.callback)
	return s
}

// Handler exposes the router for serving and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Connected successfully!",
	})
}

func (s *Server) callback(c *gin.Context) {
	start := time.Now()
	cb, err := webhook.ParseRequest(s.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			logger.LINE.Warn("signature rejected",
				slog.String("event", "webhook.signature"),
				slog.String("err", err.Error()),
			)
			c.Status(http.StatusBadRequest)
			return
		}
		logger.LINE.Error("webhook decode failed",
			slog.String("event", "webhook.decode"),
			slog.String("err", err.Error()),
		)
		c.Status(http.StatusInternalServerError)
		return
	}

	events := translateEvents(cb.Events)
	s.dispatch(c.Request.Context(), events)

	logger.LINE.Info("webhook handled",
		slog.String("event", "webhook.batch"),
		slog.Int("count", len(events)),
		slog.Duration("duration", logger.Took(start)),
	)
	c.Status(http.StatusOK)
}

// dispatch fans the batch out with per-user ordering preserved.
func (s *Server) dispatch(ctx context.Context, events []flow.Event) {
	groups := make(map[string][]flow.Event)
	var order []string
	for _, ev := range events {
		if ev.UserID == "" {
			continue
		}
		if _, ok := groups[ev.UserID]; !ok {
			order = append(order, ev.UserID)
		}
		groups[ev.UserID] = append(groups[ev.UserID], ev)
	}

	var wg sync.WaitGroup
	for _, userID := range order {
		batch := groups[userID]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, ev := range batch {
				evCtx := logger.WithEventMeta(ctx, ev.WebhookEventID, ev.UserID)
				evCtx = logger.WithRID(evCtx, logger.BuildRID(ev.WebhookEventID, ev.UserID))
				// Errors are summary-logged by the handler itself; one
				// failed event must not stall the rest of the batch.
				_ = s.flows.HandleEvent(evCtx, ev)
			}
		}()
	}
	wg.Wait()
}

func translateEvents(events []webhook.EventInterface) []flow.Event {
	out := make([]flow.Event, 0, len(events))
	for _, e := range events {
		switch ev := e.(type) {
		case webhook.MessageEvent:
			userID := sourceUserID(ev.Source)
			switch msg := ev.Message.(type) {
			case webhook.TextMessageContent:
				out = append(out, flow.Event{
					Kind:           flow.KindText,
					UserID:         userID,
					ReplyToken:     ev.ReplyToken,
					WebhookEventID: ev.WebhookEventId,
					Text:           msg.Text,
				})
			case webhook.LocationMessageContent:
				out = append(out, flow.Event{
					Kind:           flow.KindLocation,
					UserID:         userID,
					ReplyToken:     ev.ReplyToken,
					WebhookEventID: ev.WebhookEventId,
					Location:       restaurant.Coordinates{Lat: msg.Latitude, Lng: msg.Longitude},
				})
			}
		case webhook.PostbackEvent:
			if ev.Postback == nil {
				continue
			}
			out = append(out, flow.Event{
				Kind:           flow.KindPostback,
				UserID:         sourceUserID(ev.Source),
				ReplyToken:     ev.ReplyToken,
				WebhookEventID: ev.WebhookEventId,
				PostbackData:   ev.Postback.Data,
			})
		case webhook.FollowEvent:
			out = append(out, flow.Event{
				Kind:           flow.KindFollow,
				UserID:         sourceUserID(ev.Source),
				ReplyToken:     ev.ReplyToken,
				WebhookEventID: ev.WebhookEventId,
			})
		}
	}
	return out
}

func sourceUserID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}

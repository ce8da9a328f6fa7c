// Package line adapts the LINE Messaging API to the conversation flow: it
// verifies and decodes webhook deliveries, fans events out per user, and
// sends reply/push batches back through the platform.
package line

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"log/slog"

	"github.com/pg56714/line-dine-mapper/internal/logger"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultResponseTimeout   = 10 * time.Second
	defaultClientTimeout     = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second

	loadingSeconds = 20
)

// buildHTTPClient returns an HTTP client tuned for Messaging API calls.
// Delivery is single-shot: LINE redelivers webhooks on its own schedule and
// reply tokens are single-use, so a transport-level retry can only double-send.
func buildHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAliveInterval}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   defaultTLSHandshake,
		ResponseHeaderTimeout: defaultResponseTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Timeout:   defaultClientTimeout,
		Transport: transport,
	}
}

// Client sends outbound messages through the Messaging API.
type Client struct {
	api *messaging_api.MessagingApiAPI
}

// NewClient builds a Messaging API client for the given channel token. An
// empty token yields a client whose calls are rejected upstream; missing
// credentials must not prevent the bot from starting.
func NewClient(channelToken string) (*Client, error) {
	token := channelToken
	if token == "" {
		token = "unconfigured"
	}
	api, err := messaging_api.NewMessagingApiAPI(
		token,
		messaging_api.WithHTTPClient(buildHTTPClient()),
	)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// Reply consumes the single-use reply token with a batch of messages.
func (c *Client) Reply(ctx context.Context, replyToken string, msgs []messaging_api.MessageInterface) error {
	start := time.Now()
	_, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   msgs,
	})
	logSend(ctx, "line.reply", len(msgs), start, err)
	return err
}

// Push targets the user directly, bypassing reply tokens.
func (c *Client) Push(ctx context.Context, userID string, msgs []messaging_api.MessageInterface) error {
	start := time.Now()
	_, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       userID,
		Messages: msgs,
	}, "")
	logSend(ctx, "line.push", len(msgs), start, err)
	return err
}

// ShowLoading displays the typing indicator in the user's chat.
func (c *Client) ShowLoading(ctx context.Context, userID string) error {
	_, err := c.api.ShowLoadingAnimation(&messaging_api.ShowLoadingAnimationRequest{
		ChatId:         userID,
		LoadingSeconds: loadingSeconds,
	})
	return err
}

func logSend(ctx context.Context, event string, count int, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.Int("count", count),
		slog.Duration("duration", logger.Took(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
		logger.LogEvent(ctx, logger.LINE, slog.LevelError, event, attrs...)
		return
	}
	if logger.ShouldSampleDebug() {
		logger.LogEvent(ctx, logger.LINE, slog.LevelDebug, event, attrs...)
	}
}

package line

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"
	"log/slog"

	"github.com/pg56714/line-dine-mapper/internal/config"
	"github.com/pg56714/line-dine-mapper/internal/logger"
)

const shutdownGrace = 5 * time.Second

// Serve runs the webhook server until ctx is done. With server.tunnel
// enabled it listens through an ngrok tunnel instead of a local port, so a
// development machine can receive webhooks without a public address.
func Serve(ctx context.Context, cfg *config.Config, s *Server) error {
	if cfg == nil {
		return fmt.Errorf("line: nil config provided")
	}

	ln, err := listen(ctx, cfg)
	if err != nil {
		return fmt.Errorf("line: listener setup failed: %w", err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func listen(ctx context.Context, cfg *config.Config) (net.Listener, error) {
	if cfg.Server.Tunnel {
		opts := []ngrok.ConnectOption{ngrok.WithAuthtokenFromEnv()}
		if token := strings.TrimSpace(cfg.Server.NgrokToken); token != "" {
			opts = []ngrok.ConnectOption{ngrok.WithAuthtoken(token)}
		}
		tun, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), opts...)
		if err != nil {
			return nil, err
		}
		logger.LINE.Info("tunnel mode",
			slog.String("event", "mode"),
			slog.String("mode", "tunnel"),
			slog.String("public_url", tun.URL()),
		)
		return tun, nil
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	logger.LINE.Info("listen mode",
		slog.String("event", "mode"),
		slog.String("mode", "listen"),
		slog.String("listen", addr),
	)
	return ln, nil
}

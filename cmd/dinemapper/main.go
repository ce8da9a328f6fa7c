// Command dinemapper runs the LINE restaurant-discovery bot: a webhook
// server backed by Google Places for search and Postgres for favorites.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/pg56714/line-dine-mapper/internal/bootstrap"
	"github.com/pg56714/line-dine-mapper/internal/config"
	"github.com/pg56714/line-dine-mapper/internal/favorites"
	"github.com/pg56714/line-dine-mapper/internal/flow"
	"github.com/pg56714/line-dine-mapper/internal/line"
	"github.com/pg56714/line-dine-mapper/internal/logger"
	"github.com/pg56714/line-dine-mapper/internal/places"
	"github.com/pg56714/line-dine-mapper/internal/session"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("dinemapper: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	startedAt := time.Now()
	infra, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	defer infra.DB.Close()

	gateway, err := places.NewGateway(cfg.Google.MapsAPIKey)
	if err != nil {
		return fmt.Errorf("places gateway init failed: %w", err)
	}
	client, err := line.NewClient(cfg.Line.ChannelToken)
	if err != nil {
		return fmt.Errorf("line client init failed: %w", err)
	}

	store := favorites.NewStore(infra.DB)
	orchestrator := flow.New(session.NewManager(), gateway, store, client)
	server := line.NewServer(cfg.Line.ChannelSecret, cfg.Server.WebhookPath, orchestrator)

	logger.L.With("component", "app").Info("app ready",
		slog.String("event", "ready"),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = line.Serve(ctx, cfg, server)

	logger.L.With("component", "app").Info("shutting down...",
		slog.String("event", "shutdown"),
	)
	return err
}

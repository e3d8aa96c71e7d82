package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Cheese-checkers-bot/internal/config"
	"github.com/park285/Cheese-checkers-bot/internal/irisfast"
	"github.com/park285/Cheese-checkers-bot/internal/msgcat"
	"github.com/park285/Cheese-checkers-bot/internal/obslog"
	"github.com/park285/Cheese-checkers-bot/internal/pvpcheckers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "checkers-bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := obslog.InitFromEnv(); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	client := irisfast.NewClient(cfg.IrisBaseURL,
		irisfast.WithHeaderProvider(cfg.Headers),
		irisfast.WithTimeout(8*time.Second),
		irisfast.WithRetry(2),
	)
	ws := irisfast.NewWebSocket(cfg.IrisWSURL, 5, time.Second)
	ws.SetHeaderProvider(cfg.Headers)
	ws.OnStateChange(func(state irisfast.WebSocketState) {
		logger.Info("ws_state", zap.String("state", state.String()))
	})
	egress := irisfast.NewEgress(cfg.EgressMode, cfg.EgressDryRun, client, ws, logger)

	games, err := pvpcheckers.NewManager(cfg.RedisURL, cfg.GameTTL)
	if err != nil {
		return fmt.Errorf("game store: %w", err)
	}
	defer func() { _ = games.Close() }()

	if cfg.DatabaseURL != "" {
		repo, err := pvpcheckers.NewRepository(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		defer func() { _ = repo.Close() }()
		games.AttachArchive(repo)
	} else {
		logger.Warn("DATABASE_URL not set; finished games are kept in memory only")
		games.AttachArchive(pvpcheckers.NewMemoryRepository())
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return fmt.Errorf("messages: %w", err)
	}

	b := newBot(cfg, games, egress, cat)
	ws.OnMessage(func(msg *irisfast.Message) {
		go b.handle(msg)
	})

	cctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = ws.Connect(cctx)
	cancel()
	if err != nil {
		return fmt.Errorf("ws connect: %w", err)
	}
	logger.Info("checkers_bot_started",
		zap.String("prefix", cfg.BotPrefix),
		zap.String("egress", cfg.EgressMode),
		zap.Strings("rooms", cfg.AllowedRooms),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("checkers_bot_stopping")
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	return ws.Close(closeCtx)
}

package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/irisfast"
	"github.com/park285/Cheese-checkers-bot/internal/obslog"
	"github.com/park285/Cheese-checkers-bot/internal/render"
)

// irischeck verifies the Iris endpoints the bot depends on and can post a sample
// board to a room.
func main() {
	room := flag.String("room", "", "room to post a starting board to (optional)")
	mode := flag.String("egress", irisfast.ModeHTTP, "http | ws | auto")
	dryrun := flag.Bool("dryrun", false, "log replies instead of sending them")
	observe := flag.Duration("observe", 10*time.Second, "how long to print inbound WS messages")
	flag.Parse()

	if err := obslog.InitFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	baseURL := strings.TrimSpace(os.Getenv("IRIS_BASE_URL"))
	wsURL := strings.TrimSpace(os.Getenv("IRIS_WS_URL"))
	if baseURL == "" {
		logger.Fatal("IRIS_BASE_URL is required")
	}
	headers := func() map[string]string {
		m := map[string]string{}
		for env, header := range map[string]string{
			"X_USER_ID":    "X-User-Id",
			"X_USER_EMAIL": "X-User-Email",
			"X_SESSION_ID": "X-Session-Id",
		} {
			if v := strings.TrimSpace(os.Getenv(env)); v != "" {
				m[header] = v
			}
		}
		return m
	}

	client := irisfast.NewClient(baseURL,
		irisfast.WithHeaderProvider(headers),
		irisfast.WithTimeout(8*time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cfg, err := client.GetConfig(ctx)
	cancel()
	if err != nil {
		logger.Error("config_check_failed", zap.Error(err))
	} else {
		logger.Info("config_ok",
			zap.Int("port", cfg.Port),
			zap.Int("polling", cfg.PollingSpeed),
			zap.Int("rate", cfg.MessageRate),
			zap.String("endpoint", cfg.WebserverEndpoint),
		)
	}

	var ws *irisfast.WebSocket
	if wsURL == "" {
		logger.Warn("IRIS_WS_URL not set; skipping WS check")
	} else {
		ws = irisfast.NewWebSocket(wsURL, 5, time.Second)
		ws.SetHeaderProvider(headers)
		ws.OnStateChange(func(state irisfast.WebSocketState) {
			logger.Info("ws_state", zap.String("state", state.String()))
		})
		ws.OnMessage(func(msg *irisfast.Message) {
			logger.Info("ws_message", zap.String("room", msg.Room), zap.String("from", msg.SenderName()), zap.String("text", msg.Msg))
		})
		cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := ws.Connect(cctx)
		ccancel()
		if err != nil {
			logger.Error("ws_connect_failed", zap.Error(err))
			ws = nil
		}
	}

	if *room != "" {
		if err := postSample(client, ws, *mode, *dryrun, *room, logger); err != nil {
			logger.Error("sample_post_failed", zap.String("room", *room), zap.Error(err))
		} else {
			logger.Info("sample_posted", zap.String("room", *room), zap.String("egress", *mode))
		}
	}

	if ws != nil {
		time.Sleep(*observe)
		_ = ws.Close(context.Background())
	}
}

func postSample(client *irisfast.Client, ws *irisfast.WebSocket, mode string, dryrun bool, room string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	png, err := render.NewBoardRenderer().RenderPNG(ctx, checkers.NewGame().Grid(), render.Options{
		Header: "IRIS CHECK",
		Turn:   "light to move - 1",
	})
	if err != nil {
		return err
	}
	out := irisfast.NewEgress(mode, dryrun, client, ws, logger)
	if err := out.SendText(ctx, room, "irischeck: board rendering ok"); err != nil {
		return err
	}
	return out.SendImage(ctx, room, base64.StdEncoding.EncodeToString(png))
}

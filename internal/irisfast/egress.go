package irisfast

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket/wsjson"
)

// Egress sends replies over HTTP or the WebSocket.
type Egress interface {
	SendText(ctx context.Context, room, message string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

const (
	ModeHTTP = "http"
	ModeWS   = "ws"
	ModeAuto = "auto"
)

var errWSUnavailable = errors.New("ws not connected")

// NewEgress picks a transport. Auto prefers the WebSocket while it is connected and
// falls back to HTTP once per message.
func NewEgress(mode string, dryrun bool, c *Client, ws *WebSocket, logger *zap.Logger) Egress {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch mode {
	case ModeWS:
		return &wsEgress{ws: ws, dryrun: dryrun, logger: logger}
	case ModeAuto:
		return &autoEgress{
			ws:     &wsEgress{ws: ws, dryrun: dryrun, logger: logger},
			http:   &httpEgress{c: c, dryrun: dryrun, logger: logger},
			logger: logger,
		}
	default:
		return &httpEgress{c: c, dryrun: dryrun, logger: logger}
	}
}

type httpEgress struct {
	c      *Client
	dryrun bool
	logger *zap.Logger
}

func (h *httpEgress) SendText(ctx context.Context, room, message string) error {
	if h.c == nil {
		return errors.New("http egress not available")
	}
	if h.dryrun {
		h.logger.Info("http_egress_dryrun", zap.String("type", "text"), zap.String("room", room), zap.String("text", message))
		return nil
	}
	return h.c.SendMessage(ctx, room, message)
}

func (h *httpEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if h.c == nil {
		return errors.New("http egress not available")
	}
	if h.dryrun {
		h.logger.Info("http_egress_dryrun", zap.String("type", "image"), zap.String("room", room), zap.Int("bytes", len(imageBase64)))
		return nil
	}
	return h.c.SendImage(ctx, room, imageBase64)
}

type wsEgress struct {
	ws     *WebSocket
	dryrun bool
	logger *zap.Logger
}

func (w *wsEgress) SendText(ctx context.Context, room, message string) error {
	return w.send(ctx, ReplyRequest{Type: "text", Room: room, Data: message})
}

func (w *wsEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	return w.send(ctx, ReplyRequest{Type: "image", Room: room, Data: imageBase64})
}

func (w *wsEgress) send(ctx context.Context, req ReplyRequest) error {
	if w.ws == nil {
		return errors.New("ws egress not available")
	}
	if w.dryrun {
		w.logger.Info("ws_egress_dryrun", zap.String("type", req.Type), zap.String("room", req.Room))
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	return w.ws.writeJSON(ctx, &req)
}

type autoEgress struct {
	ws     *wsEgress
	http   *httpEgress
	logger *zap.Logger
}

func (a *autoEgress) SendText(ctx context.Context, room, message string) error {
	if a.ws.ws != nil && a.ws.ws.Connected() {
		if err := a.ws.SendText(ctx, room, message); err == nil {
			return nil
		}
		a.logger.Warn("egress_fallback", zap.String("type", "text"), zap.String("room", room))
	}
	return a.http.SendText(ctx, room, message)
}

func (a *autoEgress) SendImage(ctx context.Context, room, imageBase64 string) error {
	if a.ws.ws != nil && a.ws.ws.Connected() {
		if err := a.ws.SendImage(ctx, room, imageBase64); err == nil {
			return nil
		}
		a.logger.Warn("egress_fallback", zap.String("type", "image"), zap.String("room", room))
	}
	return a.http.SendImage(ctx, room, imageBase64)
}

// writeJSON serializes frames; wsjson.Write is not safe for concurrent writers.
func (ws *WebSocket) writeJSON(ctx context.Context, v any) error {
	ws.writeM.Lock()
	defer ws.writeM.Unlock()
	conn := ws.currentConn()
	if conn == nil || !ws.Connected() {
		return errWSUnavailable
	}
	return wsjson.Write(ctx, conn, v)
}

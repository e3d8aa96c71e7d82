package irisfast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func TestWebSocketReceivesAndReplies(t *testing.T) {
	replies := make(chan ReplyRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		defer c.Close(websocket.StatusNormalClosure, "")
		ctx := r.Context()
		sender := "bob"
		if err := wsjson.Write(ctx, c, Message{Msg: "!체커 현황", Room: "r1", Sender: &sender}); err != nil {
			return
		}
		var rep ReplyRequest
		if err := wsjson.Read(ctx, c, &rep); err == nil {
			replies <- rep
		}
	}))
	defer srv.Close()

	ws := NewWebSocket("ws"+strings.TrimPrefix(srv.URL, "http"), 0, time.Millisecond)
	eg := NewEgress(ModeAuto, false, NewClient(srv.URL), ws, nil)
	got := make(chan *Message, 1)
	ws.OnMessage(func(m *Message) { got <- m })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ws.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer ws.Close(context.Background())

	select {
	case m := <-got:
		if m.Room != "r1" || m.SenderName() != "bob" {
			t.Fatalf("unexpected message: %+v", m)
		}
	case <-ctx.Done():
		t.Fatalf("no message received")
	}

	if err := eg.SendText(ctx, "r1", "ok"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	select {
	case rep := <-replies:
		if rep.Type != "text" || rep.Data != "ok" {
			t.Fatalf("unexpected reply: %+v", rep)
		}
	case <-ctx.Done():
		t.Fatalf("no reply over ws")
	}
}

func TestWSEgressDisconnected(t *testing.T) {
	eg := NewEgress(ModeWS, false, nil, NewWebSocket("ws://127.0.0.1:1", 0, 0), nil)
	if err := eg.SendText(context.Background(), "r", "x"); err == nil {
		t.Fatalf("expected error while disconnected")
	}
	dry := NewEgress(ModeWS, true, nil, NewWebSocket("ws://127.0.0.1:1", 0, 0), nil)
	if err := dry.SendImage(context.Background(), "r", "x"); err != nil {
		t.Fatalf("dry run should not fail: %v", err)
	}
}

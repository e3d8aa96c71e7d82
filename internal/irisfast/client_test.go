package irisfast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestSendMessagePostsReply(t *testing.T) {
	var got ReplyRequest
	var hdr string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reply" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		hdr = r.Header.Get("X-User-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithHeaderProvider(func() map[string]string {
		return map[string]string{"X-User-Id": "bot", "X-Empty": " "}
	}))
	if err := c.SendMessage(context.Background(), "room1", "11-15"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if got.Type != "text" || got.Room != "room1" || got.Data != "11-15" || hdr != "bot" {
		t.Fatalf("unexpected reply: %+v header=%q", got, hdr)
	}
}

func TestGetConfigRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"port":3000,"bot_name":"cheese"}`))
	}))
	defer srv.Close()

	cfg, err := NewClient(srv.URL, WithRetry(3)).GetConfig(context.Background())
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if cfg.Port != 3000 || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("cfg=%+v calls=%d", cfg, calls)
	}
}

func TestReplyNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).SendImage(context.Background(), "r", "aGk="); err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("reply retried %d times", calls)
	}
}

func TestBackoffDuration(t *testing.T) {
	if backoffDuration(1) != 100*time.Millisecond || backoffDuration(3) != 400*time.Millisecond || backoffDuration(99) != backoffDuration(6) {
		t.Fatalf("unexpected backoff schedule")
	}
}

func TestMessageUserID(t *testing.T) {
	name := "민수"
	m := &Message{Sender: &name}
	if m.UserID() != "민수" || m.SenderName() != "민수" {
		t.Fatalf("sender fallback failed")
	}
	m.JSON = &MessageJSON{UserID: "42"}
	if m.UserID() != "42" || m.SenderName() != "민수" {
		t.Fatalf("json user id not preferred")
	}
}

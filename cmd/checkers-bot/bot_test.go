package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/park285/Cheese-checkers-bot/internal/config"
	"github.com/park285/Cheese-checkers-bot/internal/irisfast"
	"github.com/park285/Cheese-checkers-bot/internal/msgcat"
	"github.com/park285/Cheese-checkers-bot/internal/pvpcheckers"
)

type captured struct {
	mu     sync.Mutex
	texts  []string
	images int
}

func (c *captured) SendText(_ context.Context, _ string, msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, msg)
	return nil
}

func (c *captured) SendImage(context.Context, string, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images++
	return nil
}

func (c *captured) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.texts) == 0 {
		return ""
	}
	return c.texts[len(c.texts)-1]
}

func newTestBot(t *testing.T) (*bot, *captured) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	games, err := pvpcheckers.NewManager(fmt.Sprintf("redis://%s/0", mr.Addr()), 0)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = games.Close() })
	games.AttachArchive(pvpcheckers.NewMemoryRepository())

	cfg := &config.AppConfig{BotPrefix: "!", HistoryLimit: 10, ChallengeTTL: 10 * time.Minute, AllowedRooms: []string{"room"}}
	out := &captured{}
	return newBot(cfg, games, out, msgcat.MustDefault()), out
}

func say(b *bot, from, text string) {
	b.handle(&irisfast.Message{Msg: text, Room: "room", Sender: &from})
}

func TestBotGameFlow(t *testing.T) {
	b, out := newTestBot(t)

	say(b, "A", "!체커 @B light")
	if got := out.last(); !strings.Contains(got, "A 님이 B 님에게") || !strings.Contains(got, "!체커 수락") {
		t.Fatalf("challenge text = %q", got)
	}
	if out.images != 0 {
		t.Fatalf("no board before the challenge is accepted")
	}
	say(b, "B", "!체커 현황")
	if got := out.last(); !strings.Contains(got, "진행 중인 체커 대국이 없습니다") {
		t.Fatalf("challenged user already in a game: %q", got)
	}

	say(b, "B", "!체커 수락")
	if got := out.last(); !strings.Contains(got, "A(밝은 말) vs B(어두운 말)") {
		t.Fatalf("start text = %q", got)
	}
	if out.images != 1 {
		t.Fatalf("expected board image after start, got %d", out.images)
	}

	say(b, "B", "!체커 9-13")
	if got := out.last(); !strings.Contains(got, "상대 차례") {
		t.Fatalf("out of turn reply = %q", got)
	}

	say(b, "A", "!체커 선택 22")
	if got := out.last(); !strings.Contains(got, "17") || !strings.Contains(got, "18") {
		t.Fatalf("selection reply = %q", got)
	}

	say(b, "A", "!체커 18")
	if got := out.last(); !strings.Contains(got, "A: 22-18") {
		t.Fatalf("move reply = %q", got)
	}

	say(b, "B", "!체커 기권")
	if got := out.last(); !strings.Contains(got, "B 님이 기권") || !strings.Contains(got, "A 님 승리") {
		t.Fatalf("resign reply = %q", got)
	}

	say(b, "A", "!체커 기록")
	if got := out.last(); !strings.Contains(got, "1. A vs B") || !strings.Contains(got, "밝은 말 승") {
		t.Fatalf("history reply = %q", got)
	}

	say(b, "A", "!체커 현황")
	if got := out.last(); !strings.Contains(got, "진행 중인 체커 대국이 없습니다") {
		t.Fatalf("status after resign = %q", got)
	}
}

func TestBotIgnoresForeignRoomsAndPrefix(t *testing.T) {
	b, out := newTestBot(t)
	name := "A"
	b.handle(&irisfast.Message{Msg: "!체커", Room: "other", Sender: &name})
	say(b, "A", "체커 @B")
	if len(out.texts) != 0 {
		t.Fatalf("unexpected replies: %q", out.texts)
	}
	say(b, "A", "!체커")
	if !strings.Contains(out.last(), "!체커 @상대") {
		t.Fatalf("help = %q", out.last())
	}
}

func TestBotChallengeDeclineAndAcceptWithoutChallenge(t *testing.T) {
	b, out := newTestBot(t)

	say(b, "B", "!체커 수락")
	if got := out.last(); !strings.Contains(got, "받은 대국 신청이 없습니다") {
		t.Fatalf("accept without challenge = %q", got)
	}

	say(b, "A", "!체커 @B")
	say(b, "C", "!체커 @B")
	if got := out.last(); !strings.Contains(got, "대기 중인 신청") {
		t.Fatalf("second challenge = %q", got)
	}
	say(b, "A", "!체커 수락")
	if got := out.last(); !strings.Contains(got, "받은 대국 신청이 없습니다") {
		t.Fatalf("challenger cannot accept own challenge: %q", got)
	}

	say(b, "B", "!체커 거절")
	if got := out.last(); !strings.Contains(got, "B 님이 A 님의 대국 신청을 거절") {
		t.Fatalf("decline = %q", got)
	}
	say(b, "B", "!체커 수락")
	if got := out.last(); !strings.Contains(got, "받은 대국 신청이 없습니다") {
		t.Fatalf("accept after decline = %q", got)
	}
	if out.images != 0 {
		t.Fatalf("no game should have started")
	}

	say(b, "A", "!체커 @A")
	if got := out.last(); !strings.Contains(got, "자기 자신") {
		t.Fatalf("self challenge = %q", got)
	}
}

func TestBotBadNotation(t *testing.T) {
	b, out := newTestBot(t)
	say(b, "A", "!체커 @B light")
	say(b, "B", "!체커 수락")
	say(b, "A", "!체커 선택 x")
	if !strings.Contains(out.last(), "수 표기") {
		t.Fatalf("bad select reply = %q", out.last())
	}
	say(b, "A", "!체커 22-17-9")
	if !strings.Contains(out.last(), "수 표기") {
		t.Fatalf("bad move reply = %q", out.last())
	}
}

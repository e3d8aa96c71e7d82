package checkerspresenter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/domain"
	"github.com/park285/Cheese-checkers-bot/internal/pvpcheckers"
	"github.com/park285/Cheese-checkers-bot/internal/util"
	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

type fixedPrefix string

func (p fixedPrefix) Prefix() string { return string(p) }

func newFormatter() *Formatter { return NewFormatter(nil, fixedPrefix("!")) }

func TestHelpUsesPrefixAndSeeMore(t *testing.T) {
	got := newFormatter().Help()
	if !strings.Contains(got, "!체커 @상대") {
		t.Fatalf("help missing prefixed command: %q", got)
	}
	if !strings.Contains(got, strings.Repeat(util.KakaoZeroWidthSpace, 10)) {
		t.Fatalf("help not folded behind see-more")
	}
}

func TestStatusBranches(t *testing.T) {
	f := newFormatter()
	base := checkersdto.SessionState{LightName: "A", DarkName: "B", Turn: "dark", State: string(checkers.AwaitingSelection), LightCount: 12, DarkCount: 11}

	got := f.Status(&base)
	if !strings.Contains(got, "B") || !strings.Contains(got, "12") || !strings.Contains(got, "11") {
		t.Fatalf("status = %q", got)
	}

	chain := base
	chain.State = string(checkers.ChainCaptureInProgress)
	chain.Destinations = []string{"15", "24"}
	if got := f.Status(&chain); !strings.Contains(got, "연속 잡기") || !strings.Contains(got, "15, 24") {
		t.Fatalf("chain status = %q", got)
	}

	over := base
	over.State = string(checkers.GameOver)
	over.Outcome = "light"
	over.Winner = "A"
	if got := f.Status(&over); !strings.Contains(got, "밝은 말 승리") || !strings.Contains(got, "A") {
		t.Fatalf("over status = %q", got)
	}
}

func TestSelectedBlocked(t *testing.T) {
	got := newFormatter().Selected(&checkersdto.SessionState{Selected: "5"})
	if !strings.Contains(got, "5번 말은") {
		t.Fatalf("blocked selection = %q", got)
	}
}

func TestMoveSummary(t *testing.T) {
	f := newFormatter()
	state := &checkersdto.SessionState{LightName: "A", DarkName: "B", Turn: "light", Destinations: []string{"6"}}
	got := f.Move(&checkersdto.MoveSummary{State: state, MoverName: "A", Notation: "22x15", Captured: true, ChainContinues: true})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected capture + chain lines, got %q", got)
	}
	if !strings.Contains(lines[0], "22x15") || !strings.Contains(lines[1], "6") {
		t.Fatalf("move text = %q", got)
	}
}

func TestErrorMapping(t *testing.T) {
	f := newFormatter()
	cases := []struct {
		err  error
		want string
	}{
		{&checkers.RejectionError{Kind: checkers.ErrSelectionRejected, Reason: checkers.ReasonWrongColor}, "자신의 말만"},
		{&checkers.RejectionError{Kind: checkers.ErrIllegalDestination, Reason: checkers.ReasonCaptureRequired}, "잡기가 가능한"},
		{fmt.Errorf("%w: 99", checkers.ErrBadNotation), "수 표기"},
		{pvpcheckers.ErrNoActiveGame, "진행 중인 체커"},
		{pvpcheckers.ErrNotYourTurn, "상대 차례"},
		{pvpcheckers.ErrConcurrentUpdate, "동시 명령"},
		{checkers.ErrGameAlreadyOver, "이미 끝난"},
		{errors.New("boom"), "오류가 발생"},
	}
	for _, tc := range cases {
		if got := f.Error(tc.err); !strings.Contains(got, tc.want) {
			t.Errorf("Error(%v) = %q, want substring %q", tc.err, got, tc.want)
		}
	}
}

func TestHistory(t *testing.T) {
	f := newFormatter()
	if got := f.History(nil); !strings.Contains(got, "기록된 대국이 없습니다") {
		t.Fatalf("empty history = %q", got)
	}
	games := ToDTOGames([]*domain.CheckersGame{
		nil,
		{GameID: "g1", LightName: "A", DarkName: "B", Result: "dark", Moves: []string{"22-18", "11-15"}, EndedAt: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)},
	})
	if len(games) != 1 {
		t.Fatalf("nil entries must be skipped, got %d", len(games))
	}
	got := f.History(games)
	for _, want := range []string{"1. A vs B", "어두운 말 승", "2수", "03/01 12:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("history missing %q: %q", want, got)
		}
	}
}

type recordingSender struct {
	texts  []string
	images []string
}

func (r *recordingSender) SendText(_ context.Context, _ string, msg string) error {
	r.texts = append(r.texts, msg)
	return nil
}

func (r *recordingSender) SendImage(_ context.Context, _ string, img string) error {
	r.images = append(r.images, img)
	return nil
}

func TestPresenterBoard(t *testing.T) {
	rec := &recordingSender{}
	p := NewPresenter(rec)
	if err := p.Board(context.Background(), "room", "hello", &checkersdto.SessionState{BoardImage: []byte{1, 2, 3}}); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(rec.texts) != 1 || len(rec.images) != 1 || rec.images[0] != "AQID" {
		t.Fatalf("unexpected sends: %+v", rec)
	}
	if err := p.Board(context.Background(), "room", " ", nil); err != nil {
		t.Fatalf("Board empty: %v", err)
	}
	if len(rec.texts) != 1 || len(rec.images) != 1 {
		t.Fatalf("blank message and nil state must send nothing: %+v", rec)
	}
}

func TestChallengeTexts(t *testing.T) {
	f := newFormatter()
	got := f.Challenge("A", "B", 90*time.Second)
	for _, want := range []string{"A 님이 B 님에게", "!체커 수락", "!체커 거절", "2분"} {
		if !strings.Contains(got, want) {
			t.Errorf("challenge text missing %q: %q", want, got)
		}
	}
	if got := f.Declined("A", "B"); !strings.Contains(got, "B 님이 A 님의") {
		t.Fatalf("declined = %q", got)
	}
}

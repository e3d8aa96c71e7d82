package checkerspresenter

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

// Sender is the outbound half of the chat transport.
type Sender interface {
	SendText(ctx context.Context, room, message string) error
	SendImage(ctx context.Context, room, imageBase64 string) error
}

// Presenter delivers a text and, when present, the board image to a room.
type Presenter struct {
	out Sender
}

func NewPresenter(out Sender) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Text(ctx context.Context, room, message string) error {
	if p == nil || p.out == nil || strings.TrimSpace(message) == "" {
		return nil
	}
	return p.out.SendText(ctx, room, message)
}

func (p *Presenter) Board(ctx context.Context, room, message string, state *checkersdto.SessionState) error {
	if err := p.Text(ctx, room, message); err != nil {
		return err
	}
	if p == nil || p.out == nil || state == nil || len(state.BoardImage) == 0 {
		return nil
	}
	return p.out.SendImage(ctx, room, base64.StdEncoding.EncodeToString(state.BoardImage))
}

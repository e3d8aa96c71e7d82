package pvpcheckers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/render"
	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

// ToDTO renders the board and returns the presenter view of g.
func (m *Manager) ToDTO(ctx context.Context, g *Game) (*checkersdto.SessionState, error) {
	if m == nil || g == nil {
		return nil, nil
	}
	s, err := rebuild(g)
	if err != nil {
		return nil, err
	}
	return m.ToDTOWithSession(ctx, g, s)
}

// ToDTOWithSession is ToDTO for a session the caller already holds.
func (m *Manager) ToDTOWithSession(ctx context.Context, g *Game, s *checkers.Session) (*checkersdto.SessionState, error) {
	b := s.Board()
	state := &checkersdto.SessionState{
		GameID:     g.ID,
		LightName:  g.LightName,
		DarkName:   g.DarkName,
		Moves:      append([]string(nil), g.Moves...),
		Turn:       string(s.Turn()),
		State:      string(s.State()),
		LightCount: b.CountByColor(checkers.Light),
		DarkCount:  b.CountByColor(checkers.Dark),
		Outcome:    g.Outcome,
	}
	if g.Active() {
		state.MustCapture = s.MustCapture()
	} else {
		state.State = string(checkers.GameOver)
		state.Winner = g.PlayerName(checkers.Color(g.Outcome))
	}

	opts := render.Options{
		Header: fmt.Sprintf("LIGHT %d : %d DARK", state.LightCount, state.DarkCount),
		Turn:   hudTurn(g, s),
	}
	if p, ok := s.Selected(); ok && g.Active() {
		sq := p.Square
		opts.Selected = &sq
		opts.Destinations = s.LegalDestinations()
		n, _ := checkers.SquareNumber(sq)
		state.Selected = strconv.Itoa(n)
		for _, d := range opts.Destinations {
			dn, _ := checkers.SquareNumber(d)
			state.Destinations = append(state.Destinations, strconv.Itoa(dn))
		}
	}
	if n := len(g.Moves); n > 0 {
		if mt, err := checkers.ParseMove(g.Moves[n-1]); err == nil && mt.HasFrom {
			from, to := mt.From, mt.To
			opts.LastFrom, opts.LastTo = &from, &to
		}
	}

	png, err := m.renderer.RenderPNG(ctx, s.Grid(), opts)
	if err != nil {
		return nil, err
	}
	state.BoardImage = png
	return state, nil
}

func hudTurn(g *Game, s *checkers.Session) string {
	if !g.Active() {
		if g.Outcome == "" {
			return "game over"
		}
		return g.Outcome + " wins"
	}
	turn := s.Plies()/2 + 1
	if s.State() == checkers.ChainCaptureInProgress {
		return fmt.Sprintf("%s jumps again", s.Turn())
	}
	return fmt.Sprintf("%s to move - %d", s.Turn(), turn)
}

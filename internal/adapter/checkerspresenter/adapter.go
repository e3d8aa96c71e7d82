package checkerspresenter

import (
	"github.com/park285/Cheese-checkers-bot/internal/domain"
	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

func ToDTOGames(list []*domain.CheckersGame) []*checkersdto.CheckersGame {
	out := make([]*checkersdto.CheckersGame, 0, len(list))
	for _, g := range list {
		if dto := ToDTOGame(g); dto != nil {
			out = append(out, dto)
		}
	}
	return out
}

func ToDTOGame(g *domain.CheckersGame) *checkersdto.CheckersGame {
	if g == nil {
		return nil
	}
	return &checkersdto.CheckersGame{
		GameID:       g.GameID,
		LightName:    g.LightName,
		DarkName:     g.DarkName,
		Result:       g.Result,
		ResultMethod: g.ResultMethod,
		Moves:        append([]string(nil), g.Moves...),
		StartedAt:    g.StartedAt,
		EndedAt:      g.EndedAt,
		Duration:     g.Duration,
	}
}

package pvpcheckers

import (
	"fmt"
	"strings"
	"time"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/domain"
)

// ToRecord converts a finished game into its archive form.
func ToRecord(g *Game) (*domain.CheckersGame, error) {
	pdn, err := BuildPDN(g)
	if err != nil {
		return nil, err
	}
	ended := g.UpdatedAt
	duration := ended.Sub(g.CreatedAt)
	if duration < 0 {
		duration = 0
	}
	return &domain.CheckersGame{
		GameID:       g.ID,
		LightID:      g.LightID,
		LightName:    g.LightName,
		DarkID:       g.DarkID,
		DarkName:     g.DarkName,
		Room:         g.Room,
		Result:       g.Outcome,
		ResultMethod: g.Method,
		Moves:        append([]string(nil), g.Moves...),
		PDN:          pdn,
		StartedAt:    g.CreatedAt,
		EndedAt:      ended,
		Duration:     duration,
	}, nil
}

func mapResultToPDN(result string) string {
	switch checkers.Color(strings.ToLower(strings.TrimSpace(result))) {
	case checkers.Light:
		return "1-0"
	case checkers.Dark:
		return "0-1"
	default:
		return "*"
	}
}

// BuildPDN writes the game as portable draughts notation. Jumps of one chain are
// joined into a single move such as "22x15x6".
func BuildPDN(g *Game) (string, error) {
	if g == nil {
		return "", nil
	}
	turns, err := groupTurns(g.Moves)
	if err != nil {
		return "", err
	}
	result := mapResultToPDN(g.Outcome)
	date := g.UpdatedAt
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	b.WriteString("[Event \"Kakao Checkers\"]\n")
	b.WriteString("[Site \"Iris\"]\n")
	b.WriteString(fmt.Sprintf("[Date \"%04d.%02d.%02d\"]\n", date.Year(), int(date.Month()), date.Day()))
	b.WriteString(fmt.Sprintf("[Light \"%s\"]\n", sanitizePDN(g.LightName)))
	b.WriteString(fmt.Sprintf("[Dark \"%s\"]\n", sanitizePDN(g.DarkName)))
	b.WriteString("[GameType \"21\"]\n")
	if strings.TrimSpace(g.Method) != "" {
		b.WriteString(fmt.Sprintf("[Termination \"%s\"]\n", sanitizePDN(g.Method)))
	}
	b.WriteString(fmt.Sprintf("[Result \"%s\"]\n\n", result))

	for i := 0; i < len(turns); i += 2 {
		b.WriteString(fmt.Sprintf("%d. %s", i/2+1, turns[i]))
		if i+1 < len(turns) {
			b.WriteString(" ")
			b.WriteString(turns[i+1])
		}
		b.WriteString(" ")
	}
	b.WriteString(result)
	return b.String(), nil
}

// groupTurns replays the log and merges consecutive jumps of one piece.
func groupTurns(moves []string) ([]string, error) {
	s := checkers.NewGame()
	var (
		turns []string
		cur   string
	)
	for i, raw := range moves {
		next, out, err := s.Play(raw)
		if err != nil {
			return nil, fmt.Errorf("pdn move %d %q: %w", i+1, raw, err)
		}
		text := checkers.FormatMove(out.Move)
		if cur == "" {
			cur = text
		} else {
			to, _ := checkers.SquareNumber(out.Move.To)
			cur = fmt.Sprintf("%sx%d", cur, to)
		}
		if !out.ChainContinues {
			turns = append(turns, cur)
			cur = ""
		}
		s = next
	}
	if cur != "" {
		turns = append(turns, cur)
	}
	return turns, nil
}

func sanitizePDN(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}

package checkers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadNotation is returned for input that does not name squares.
var ErrBadNotation = errors.New("bad move notation")

// SquareNumber maps a playable square to its draughts number 1-32, counted row
// by row from the top edge.
func SquareNumber(sq Square) (int, bool) {
	if !sq.Playable() {
		return 0, false
	}
	return sq.Row*4 + sq.Col/2 + 1, true
}

func SquareFromNumber(n int) (Square, bool) {
	if n < 1 || n > 32 {
		return Square{}, false
	}
	idx := n - 1
	row := idx / 4
	col := (idx % 4) * 2
	if row%2 == 0 {
		col++
	}
	return Square{Row: row, Col: col}, true
}

func ParseSquare(s string) (Square, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Square{}, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	sq, ok := SquareFromNumber(n)
	if !ok {
		return Square{}, fmt.Errorf("%w: square %d out of range", ErrBadNotation, n)
	}
	return sq, nil
}

// FormatMove renders "11-15" for a step and "15x22" for a jump.
func FormatMove(m Move) string {
	from, _ := SquareNumber(m.From)
	to, _ := SquareNumber(m.To)
	sep := "-"
	if m.Kind == Capture {
		sep = "x"
	}
	return fmt.Sprintf("%d%s%d", from, sep, to)
}

// MoveText is parsed player input. HasFrom is false for a bare destination, which
// applies to the piece already selected.
type MoveText struct {
	From    Square
	To      Square
	HasFrom bool
}

// ParseMove accepts "11-15", "15x22" or a bare "22". The separator is not
// checked against the move kind; the engine decides what the move is.
func ParseMove(s string) (MoveText, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return MoveText{}, fmt.Errorf("%w: empty", ErrBadNotation)
	}
	idx := strings.IndexAny(raw, "-x")
	if idx < 0 {
		to, err := ParseSquare(raw)
		if err != nil {
			return MoveText{}, err
		}
		return MoveText{To: to}, nil
	}
	from, err := ParseSquare(raw[:idx])
	if err != nil {
		return MoveText{}, err
	}
	to, err := ParseSquare(raw[idx+1:])
	if err != nil {
		return MoveText{}, err
	}
	return MoveText{From: from, To: to, HasFrom: true}, nil
}

// Play selects (when the text names a source) and applies one move.
func (s *Session) Play(text string) (*Session, Outcome, error) {
	mt, err := ParseMove(text)
	if err != nil {
		return nil, Outcome{}, err
	}
	cur := s
	if mt.HasFrom {
		if cur, err = s.SelectAt(mt.From); err != nil {
			return nil, Outcome{}, err
		}
	}
	return cur.ApplyMove(mt.To)
}

// Replay rebuilds a session from a move log written with FormatMove. Each jump of
// a chain is its own entry.
func Replay(moves []string) (*Session, error) {
	s := NewGame()
	for i, raw := range moves {
		next, _, err := s.Play(raw)
		if err != nil {
			return nil, fmt.Errorf("replay move %d %q: %w", i+1, raw, err)
		}
		s = next
	}
	return s, nil
}

package checkers

import "fmt"

// State is the controller phase derived from a session.
type State string

const (
	AwaitingSelection      State = "AWAITING_SELECTION"
	PieceSelected          State = "PIECE_SELECTED"
	ChainCaptureInProgress State = "CHAIN_CAPTURE_IN_PROGRESS"
	GameOver               State = "GAME_OVER"
)

// Session is one game. Operations never mutate the receiver; they return the next
// snapshot, or an error and no snapshot when nothing changed.
type Session struct {
	board      *Board
	turn       Color
	selected   PieceID
	chain      PieceID
	candidates []Move
	ended      bool
	winner     Color
	plies      int
}

// Outcome describes what a successful ApplyMove did.
type Outcome struct {
	Mover          Color
	Piece          PieceID
	Move           Move
	Captured       PieceID
	ChainContinues bool
	TurnSwitched   bool
	GameOver       bool
	Winner         Color
}

// NewGame starts from the standard position with Light to move.
func NewGame() *Session {
	return NewSession(StandardBoard(), Light)
}

// NewSession wraps an arbitrary position. The board is copied.
func NewSession(b *Board, turn Color) *Session {
	s := &Session{board: b.Clone(), turn: turn}
	if w, over := Evaluate(s.board); over {
		s.ended, s.winner = true, w
	}
	return s
}

func (s *Session) State() State {
	switch {
	case s.ended:
		return GameOver
	case s.chain != NoPiece:
		return ChainCaptureInProgress
	case s.selected != NoPiece:
		return PieceSelected
	default:
		return AwaitingSelection
	}
}

// Board returns a copy of the current position.
func (s *Session) Board() *Board { return s.board.Clone() }

func (s *Session) Grid() Grid { return s.board.Grid() }

func (s *Session) Turn() Color { return s.turn }

func (s *Session) Plies() int { return s.plies }

func (s *Session) Selected() (Piece, bool) {
	if s.selected == NoPiece {
		return Piece{}, false
	}
	return s.board.Piece(s.selected)
}

func (s *Session) ChainPiece() (PieceID, bool) { return s.chain, s.chain != NoPiece }

// Candidates is the active move set of the selected piece.
func (s *Session) Candidates() []Move { return append([]Move(nil), s.candidates...) }

// LegalDestinations is what a presentation layer should highlight.
func (s *Session) LegalDestinations() []Square {
	out := make([]Square, 0, len(s.candidates))
	for _, m := range s.candidates {
		out = append(out, m.To)
	}
	return out
}

func (s *Session) IsGameOver() bool { return s.ended }

func (s *Session) Winner() (Color, bool) { return s.winner, s.ended }

// MustCapture reports whether the side to move is under the forced-capture rule.
func (s *Session) MustCapture() bool {
	return !s.ended && AnyCaptureAvailable(s.board, s.turn)
}

// SelectPiece makes id the active piece and computes its candidate moves.
func (s *Session) SelectPiece(id PieceID) (*Session, error) {
	if s.ended {
		return nil, ErrGameAlreadyOver
	}
	p, ok := s.board.Piece(id)
	if !ok {
		return nil, rejectSelection(ReasonUnknownPiece)
	}
	if p.Color != s.turn {
		return nil, rejectSelection(ReasonWrongColor)
	}
	if s.chain != NoPiece && s.chain != id {
		return nil, rejectSelection(ReasonChainLocked)
	}

	moves := GenerateMoves(s.board, p)
	if s.chain != NoPiece || AnyCaptureAvailable(s.board, s.turn) {
		moves = onlyCaptures(moves)
		if len(moves) == 0 {
			return nil, rejectSelection(ReasonCaptureRequired)
		}
	}

	next := s.clone()
	next.selected = id
	next.candidates = moves
	return next, nil
}

// SelectAt selects the piece standing on sq.
func (s *Session) SelectAt(sq Square) (*Session, error) {
	if s.ended {
		return nil, ErrGameAlreadyOver
	}
	p, ok := s.board.PieceAt(sq)
	if !ok {
		return nil, rejectSelection(ReasonEmptySquare)
	}
	return s.SelectPiece(p.ID)
}

// ClearSelection drops the active piece. Not allowed while a chain is pending.
func (s *Session) ClearSelection() (*Session, error) {
	if s.ended {
		return nil, ErrGameAlreadyOver
	}
	if s.chain != NoPiece {
		return nil, rejectSelection(ReasonChainLocked)
	}
	next := s.clone()
	next.selected = NoPiece
	next.candidates = nil
	return next, nil
}

// ApplyMove plays the selected piece to a candidate destination.
func (s *Session) ApplyMove(to Square) (*Session, Outcome, error) {
	if s.ended {
		return nil, Outcome{}, ErrGameAlreadyOver
	}
	if s.selected == NoPiece {
		return nil, Outcome{}, rejectDestination(ReasonNoSelection)
	}
	mv, ok := s.candidate(to)
	if !ok {
		return nil, Outcome{}, rejectDestination(ReasonNotCandidate)
	}

	next := s.clone()
	out := Outcome{Mover: s.turn, Piece: s.selected, Move: mv}

	if mv.Kind == Capture {
		victim, ok := next.board.PieceAt(mv.Captured)
		if !ok {
			return nil, Outcome{}, fmt.Errorf("%w: nothing to capture at %v", ErrUnknownPiece, mv.Captured)
		}
		if err := next.board.RemovePiece(victim.ID); err != nil {
			return nil, Outcome{}, err
		}
		out.Captured = victim.ID
	}
	if err := next.board.MovePiece(s.selected, to); err != nil {
		return nil, Outcome{}, err
	}
	next.plies++

	if winner, over := Evaluate(next.board); over {
		next.ended, next.winner = true, winner
		next.resetSelection()
		out.GameOver, out.Winner = true, winner
		return next, out, nil
	}

	if mv.Kind == Capture {
		moved, _ := next.board.Piece(s.selected)
		if more := CaptureMoves(next.board, moved); len(more) > 0 {
			next.chain = s.selected
			next.candidates = more
			out.ChainContinues = true
			return next, out, nil
		}
	}

	next.resetSelection()
	next.turn = s.turn.Opponent()
	out.TurnSwitched = true
	return next, out, nil
}

func (s *Session) candidate(to Square) (Move, bool) {
	for _, m := range s.candidates {
		if m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

func (s *Session) resetSelection() {
	s.selected = NoPiece
	s.chain = NoPiece
	s.candidates = nil
}

func (s *Session) clone() *Session {
	c := *s
	c.board = s.board.Clone()
	c.candidates = append([]Move(nil), s.candidates...)
	return &c
}

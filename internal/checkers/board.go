package checkers

import (
	"fmt"
	"sort"
)

// Board maps squares to pieces. It keeps the active pieces plus the colors of
// captured ones.
type Board struct {
	squares  map[Square]PieceID
	roster   map[PieceID]Piece
	captured map[PieceID]Color
}

func NewBoard() *Board {
	return &Board{
		squares:  make(map[Square]PieceID),
		roster:   make(map[PieceID]Piece),
		captured: make(map[PieceID]Color),
	}
}

// StandardBoard returns the opening position: Dark on the playable squares of
// rows 0-2, Light on rows 5-7. Dark pieces get ids 1-12, Light 13-24.
func StandardBoard() *Board {
	b := NewBoard()
	next := PieceID(1)
	place := func(c Color, rows ...int) {
		for _, row := range rows {
			for col := 0; col < BoardSize; col++ {
				sq := Square{Row: row, Col: col}
				if !sq.Playable() {
					continue
				}
				_ = b.Place(Piece{ID: next, Color: c}, sq)
				next++
			}
		}
	}
	place(Dark, 0, 1, 2)
	place(Light, 5, 6, 7)
	return b
}

func (b *Board) PieceAt(sq Square) (Piece, bool) {
	id, ok := b.squares[sq]
	if !ok {
		return Piece{}, false
	}
	return b.roster[id], true
}

// Piece returns an active piece by id.
func (b *Board) Piece(id PieceID) (Piece, bool) {
	p, ok := b.roster[id]
	return p, ok
}

// Place puts a new piece on an empty playable square. Setup only.
func (b *Board) Place(p Piece, sq Square) error {
	if p.ID == NoPiece || !p.Color.Valid() {
		return fmt.Errorf("%w: bad piece %+v", ErrInvalidMove, p)
	}
	if !sq.Playable() {
		return fmt.Errorf("%w: square %v is not playable", ErrInvalidMove, sq)
	}
	if _, taken := b.squares[sq]; taken {
		return fmt.Errorf("%w: square %v occupied", ErrInvalidMove, sq)
	}
	if _, dup := b.roster[p.ID]; dup {
		return fmt.Errorf("%w: duplicate id %d", ErrInvalidMove, p.ID)
	}
	if _, dup := b.captured[p.ID]; dup {
		return fmt.Errorf("%w: duplicate id %d", ErrInvalidMove, p.ID)
	}
	p.Square = sq
	b.roster[p.ID] = p
	b.squares[sq] = p.ID
	return nil
}

// MovePiece relocates an active piece onto an empty playable square.
func (b *Board) MovePiece(id PieceID, to Square) error {
	p, ok := b.roster[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	if !to.Playable() {
		return fmt.Errorf("%w: square %v is not playable", ErrInvalidMove, to)
	}
	if _, taken := b.squares[to]; taken {
		return fmt.Errorf("%w: square %v occupied", ErrInvalidMove, to)
	}
	delete(b.squares, p.Square)
	p.Square = to
	b.roster[id] = p
	b.squares[to] = id
	return nil
}

// RemovePiece takes a piece off the board. Removing it twice fails.
func (b *Board) RemovePiece(id PieceID) error {
	p, ok := b.roster[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	delete(b.squares, p.Square)
	delete(b.roster, id)
	b.captured[id] = p.Color
	return nil
}

func (b *Board) CountByColor(c Color) int {
	n := 0
	for _, p := range b.roster {
		if p.Color == c {
			n++
		}
	}
	return n
}

// CapturedCount is the number of c's pieces taken so far.
func (b *Board) CapturedCount(c Color) int {
	n := 0
	for _, col := range b.captured {
		if col == c {
			n++
		}
	}
	return n
}

// Pieces lists the active pieces of c ordered by square.
func (b *Board) Pieces(c Color) []Piece {
	out := make([]Piece, 0, len(b.roster))
	for _, p := range b.roster {
		if p.Color == c {
			out = append(out, p)
		}
	}
	sortPieces(out)
	return out
}

// All lists every active piece ordered by square.
func (b *Board) All() []Piece {
	out := make([]Piece, 0, len(b.roster))
	for _, p := range b.roster {
		out = append(out, p)
	}
	sortPieces(out)
	return out
}

func (b *Board) Clone() *Board {
	c := &Board{
		squares:  make(map[Square]PieceID, len(b.squares)),
		roster:   make(map[PieceID]Piece, len(b.roster)),
		captured: make(map[PieceID]Color, len(b.captured)),
	}
	for k, v := range b.squares {
		c.squares[k] = v
	}
	for k, v := range b.roster {
		c.roster[k] = v
	}
	for k, v := range b.captured {
		c.captured[k] = v
	}
	return c
}

// Grid is a read-only row-major view for renderers; empty cells have ID NoPiece.
type Grid [BoardSize][BoardSize]Piece

func (b *Board) Grid() Grid {
	var g Grid
	for _, p := range b.roster {
		g[p.Square.Row][p.Square.Col] = p
	}
	return g
}

func sortPieces(ps []Piece) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Square.Less(ps[j].Square) })
}

package checkers

import (
	"errors"
	"testing"
)

type placement struct {
	id       PieceID
	color    Color
	row, col int
}

func boardWith(t *testing.T, ps ...placement) *Board {
	t.Helper()
	b := NewBoard()
	for _, p := range ps {
		if err := b.Place(Piece{ID: p.id, Color: p.color}, Square{Row: p.row, Col: p.col}); err != nil {
			t.Fatalf("place %+v: %v", p, err)
		}
	}
	return b
}

func assertBoardInvariants(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[Square]PieceID)
	for _, p := range b.All() {
		if !p.Square.Playable() {
			t.Fatalf("piece %d on unplayable square %+v", p.ID, p.Square)
		}
		if other, dup := seen[p.Square]; dup {
			t.Fatalf("pieces %d and %d share %+v", other, p.ID, p.Square)
		}
		seen[p.Square] = p.ID
		at, ok := b.PieceAt(p.Square)
		if !ok || at.ID != p.ID {
			t.Fatalf("square %+v does not map back to piece %d", p.Square, p.ID)
		}
	}
}

func TestStandardBoardLayout(t *testing.T) {
	b := StandardBoard()
	if got := b.CountByColor(Light); got != 12 {
		t.Fatalf("light count = %d, want 12", got)
	}
	if got := b.CountByColor(Dark); got != 12 {
		t.Fatalf("dark count = %d, want 12", got)
	}
	for _, p := range b.Pieces(Dark) {
		if p.Square.Row > 2 {
			t.Fatalf("dark piece %d on row %d", p.ID, p.Square.Row)
		}
	}
	for _, p := range b.Pieces(Light) {
		if p.Square.Row < 5 {
			t.Fatalf("light piece %d on row %d", p.ID, p.Square.Row)
		}
	}
	assertBoardInvariants(t, b)
}

func TestPlaceRejectsBadSquares(t *testing.T) {
	b := NewBoard()
	if err := b.Place(Piece{ID: 1, Color: Dark}, Square{Row: 0, Col: 0}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("unplayable square: got %v", err)
	}
	if err := b.Place(Piece{ID: 1, Color: Dark}, Square{Row: 0, Col: 9}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("out of bounds: got %v", err)
	}
	if err := b.Place(Piece{ID: 1, Color: Dark}, Square{Row: 0, Col: 1}); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := b.Place(Piece{ID: 2, Color: Light}, Square{Row: 0, Col: 1}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("occupied square: got %v", err)
	}
	if err := b.Place(Piece{ID: 1, Color: Light}, Square{Row: 0, Col: 3}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("duplicate id: got %v", err)
	}
}

func TestMoveAndRemovePiece(t *testing.T) {
	b := boardWith(t,
		placement{1, Dark, 2, 1},
		placement{2, Light, 3, 2},
	)
	if err := b.MovePiece(1, Square{Row: 3, Col: 2}); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("move onto occupied: got %v", err)
	}
	if err := b.MovePiece(1, Square{Row: 3, Col: 0}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, ok := b.PieceAt(Square{Row: 2, Col: 1}); ok {
		t.Fatalf("old square still occupied")
	}
	if p, ok := b.PieceAt(Square{Row: 3, Col: 0}); !ok || p.ID != 1 {
		t.Fatalf("piece not found at destination: %+v %v", p, ok)
	}

	if err := b.RemovePiece(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := b.RemovePiece(2); !errors.Is(err, ErrUnknownPiece) {
		t.Fatalf("second remove: got %v", err)
	}
	if err := b.MovePiece(2, Square{Row: 4, Col: 1}); !errors.Is(err, ErrUnknownPiece) {
		t.Fatalf("move removed piece: got %v", err)
	}
	if b.CountByColor(Light) != 0 || b.CapturedCount(Light) != 1 {
		t.Fatalf("light count=%d captured=%d", b.CountByColor(Light), b.CapturedCount(Light))
	}
	assertBoardInvariants(t, b)
}

func TestCloneIsIndependent(t *testing.T) {
	b := boardWith(t, placement{1, Dark, 2, 1})
	c := b.Clone()
	if err := c.MovePiece(1, Square{Row: 3, Col: 0}); err != nil {
		t.Fatalf("move clone: %v", err)
	}
	if p, _ := b.Piece(1); p.Square != (Square{Row: 2, Col: 1}) {
		t.Fatalf("original board changed: %+v", p)
	}
}

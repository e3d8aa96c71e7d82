package checkers

import "testing"

func destinations(moves []Move) []Square {
	out := make([]Square, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.To)
	}
	return out
}

func TestInitialMoves(t *testing.T) {
	b := StandardBoard()

	edge, ok := b.PieceAt(Square{Row: 5, Col: 0})
	if !ok || edge.Color != Light {
		t.Fatalf("expected light piece at (5,0), got %+v", edge)
	}
	moves := GenerateMoves(b, edge)
	if len(moves) != 1 || moves[0].Kind != Step || moves[0].To != (Square{Row: 4, Col: 1}) {
		t.Fatalf("edge piece moves = %+v", moves)
	}

	inner, _ := b.PieceAt(Square{Row: 5, Col: 2})
	got := destinations(GenerateMoves(b, inner))
	want := []Square{{Row: 4, Col: 1}, {Row: 4, Col: 3}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("inner piece destinations = %v, want %v", got, want)
	}

	dark, _ := b.PieceAt(Square{Row: 2, Col: 1})
	got = destinations(GenerateMoves(b, dark))
	want = []Square{{Row: 3, Col: 0}, {Row: 3, Col: 2}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("dark destinations = %v, want %v", got, want)
	}

	back, _ := b.PieceAt(Square{Row: 7, Col: 0})
	if moves := GenerateMoves(b, back); len(moves) != 0 {
		t.Fatalf("blocked back-row piece has moves %+v", moves)
	}

	if AnyCaptureAvailable(b, Light) || AnyCaptureAvailable(b, Dark) {
		t.Fatalf("no captures expected at start")
	}
}

func TestCapturesAreOmnidirectional(t *testing.T) {
	// Light piece surrounded diagonally by dark pieces with free landing squares
	// behind the two rear ones only.
	b := boardWith(t,
		placement{1, Light, 4, 3},
		placement{2, Dark, 5, 2},
		placement{3, Dark, 5, 4},
		placement{4, Dark, 3, 2},
		placement{5, Dark, 2, 1},
	)
	p, _ := b.Piece(1)
	moves := GenerateMoves(b, p)

	var captures []Move
	for _, m := range moves {
		if m.Kind == Capture {
			captures = append(captures, m)
		}
	}
	if len(captures) != 2 {
		t.Fatalf("captures = %+v, want backward jumps to (6,1) and (6,5)", captures)
	}
	if captures[0].To != (Square{Row: 6, Col: 1}) || captures[0].Captured != (Square{Row: 5, Col: 2}) {
		t.Fatalf("first capture = %+v", captures[0])
	}
	if captures[1].To != (Square{Row: 6, Col: 5}) || captures[1].Captured != (Square{Row: 5, Col: 4}) {
		t.Fatalf("second capture = %+v", captures[1])
	}
	// forward step to (3,4) remains available, (3,2) is blocked
	steps := 0
	for _, m := range moves {
		if m.Kind == Step {
			steps++
			if m.To != (Square{Row: 3, Col: 4}) {
				t.Fatalf("unexpected step %+v", m)
			}
		}
	}
	if steps != 1 {
		t.Fatalf("steps = %d, want 1", steps)
	}
	if !AnyCaptureAvailable(b, Light) {
		t.Fatalf("light should have a capture")
	}
}

func TestNoCaptureOverOwnPieceOrOffBoard(t *testing.T) {
	b := boardWith(t,
		placement{1, Light, 6, 1},
		placement{2, Light, 5, 2},
		placement{3, Dark, 7, 0},
		placement{4, Dark, 1, 0},
	)
	p, _ := b.Piece(1)
	if got := CaptureMoves(b, p); len(got) != 0 {
		t.Fatalf("captures = %+v, want none", got)
	}
	edge, _ := b.Piece(4)
	if got := CaptureMoves(b, edge); len(got) != 0 {
		t.Fatalf("edge captures = %+v, want none", got)
	}
}

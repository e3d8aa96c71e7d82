package checkers

import "sort"

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// GenerateMoves lists the legal moves of p on b: forward diagonal steps onto empty
// squares, and single jumps in any diagonal over an adjacent enemy onto an empty
// square. Results are ordered by destination.
func GenerateMoves(b *Board, p Piece) []Move {
	moves := make([]Move, 0, 6)

	fwd := p.Color.Forward()
	for _, dc := range [2]int{-1, 1} {
		to := p.Square.Add(fwd, dc)
		if !to.InBounds() {
			continue
		}
		if _, occupied := b.PieceAt(to); occupied {
			continue
		}
		moves = append(moves, Move{Kind: Step, From: p.Square, To: to})
	}

	for _, d := range diagonals {
		mid := p.Square.Add(d[0], d[1])
		if !mid.InBounds() {
			continue
		}
		victim, ok := b.PieceAt(mid)
		if !ok || victim.Color == p.Color {
			continue
		}
		land := mid.Add(d[0], d[1])
		if !land.InBounds() {
			continue
		}
		if _, occupied := b.PieceAt(land); occupied {
			continue
		}
		moves = append(moves, Move{Kind: Capture, From: p.Square, To: land, Captured: mid})
	}

	sort.Slice(moves, func(i, j int) bool { return moves[i].To.Less(moves[j].To) })
	return moves
}

// CaptureMoves is GenerateMoves restricted to jumps.
func CaptureMoves(b *Board, p Piece) []Move {
	return onlyCaptures(GenerateMoves(b, p))
}

// AnyCaptureAvailable reports whether some piece of c can jump. When true, c may
// not make a plain step this turn.
func AnyCaptureAvailable(b *Board, c Color) bool {
	for _, p := range b.Pieces(c) {
		if len(CaptureMoves(b, p)) > 0 {
			return true
		}
	}
	return false
}

func onlyCaptures(moves []Move) []Move {
	out := moves[:0:0]
	for _, m := range moves {
		if m.Kind == Capture {
			out = append(out, m)
		}
	}
	return out
}

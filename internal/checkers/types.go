package checkers

import (
	"fmt"
	"strings"
)

// BoardSize is the only supported board dimension.
const BoardSize = 8

// Color identifies a side.
type Color string

const (
	Light Color = "light"
	Dark  Color = "dark"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == Light {
		return Dark
	}
	return Light
}

// Forward is the row delta of a non-capturing step. Dark starts on rows 0-2 and
// advances toward row 7, Light starts on rows 5-7 and advances toward row 0.
func (c Color) Forward() int {
	if c == Dark {
		return 1
	}
	return -1
}

func (c Color) Valid() bool { return c == Light || c == Dark }

// ParseColor accepts the side names plus the chess-style aliases players tend to type.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "l", "white", "w":
		return Light, true
	case "dark", "d", "black", "b":
		return Dark, true
	default:
		return "", false
	}
}

// Square is a board coordinate. Row 0 is the top edge.
type Square struct {
	Row int
	Col int
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Playable reports whether pieces may ever stand on s.
func (s Square) Playable() bool {
	return s.InBounds() && (s.Row+s.Col)%2 == 1
}

func (s Square) Add(dr, dc int) Square { return Square{Row: s.Row + dr, Col: s.Col + dc} }

// Less orders squares by row, then column.
func (s Square) Less(o Square) bool {
	if s.Row != o.Row {
		return s.Row < o.Row
	}
	return s.Col < o.Col
}

func (s Square) String() string {
	if n, ok := SquareNumber(s); ok {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// PieceID is stable for the lifetime of a piece. Zero means "no piece".
type PieceID int

const NoPiece PieceID = 0

type Piece struct {
	ID     PieceID
	Color  Color
	Square Square
}

type MoveKind int

const (
	Step MoveKind = iota + 1
	Capture
)

func (k MoveKind) String() string {
	switch k {
	case Step:
		return "step"
	case Capture:
		return "capture"
	default:
		return "unknown"
	}
}

// Move is a derived candidate. Captured is meaningful only for Capture.
type Move struct {
	Kind     MoveKind
	From     Square
	To       Square
	Captured Square
}

func (m Move) IsCapture() bool { return m.Kind == Capture }

package checkers

// Evaluate reports a winner once one side has no pieces left. A side that still
// has pieces but no legal move is not treated as beaten.
func Evaluate(b *Board) (Color, bool) {
	switch {
	case b.CountByColor(Light) == 0:
		return Dark, true
	case b.CountByColor(Dark) == 0:
		return Light, true
	default:
		return "", false
	}
}

package checkers

import "errors"

// Every error below means the operation left the session untouched.
var (
	ErrSelectionRejected  = errors.New("selection rejected")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrGameAlreadyOver    = errors.New("game already over")
	ErrUnknownPiece       = errors.New("unknown piece")
	ErrInvalidMove        = errors.New("invalid move")
)

// Reason names why a selection or move was refused.
type Reason string

const (
	ReasonUnknownPiece    Reason = "unknown_piece"
	ReasonEmptySquare     Reason = "empty_square"
	ReasonWrongColor      Reason = "wrong_color"
	ReasonChainLocked     Reason = "chain_locked"
	ReasonCaptureRequired Reason = "capture_required"
	ReasonNoSelection     Reason = "no_selection"
	ReasonNotCandidate    Reason = "not_candidate"
)

// RejectionError wraps ErrSelectionRejected or ErrIllegalDestination with a reason.
type RejectionError struct {
	Kind   error
	Reason Reason
}

func (e *RejectionError) Error() string { return e.Kind.Error() + ": " + string(e.Reason) }

func (e *RejectionError) Unwrap() error { return e.Kind }

func rejectSelection(r Reason) error {
	return &RejectionError{Kind: ErrSelectionRejected, Reason: r}
}

func rejectDestination(r Reason) error {
	return &RejectionError{Kind: ErrIllegalDestination, Reason: r}
}

// ReasonOf extracts the rejection reason, or "" when err carries none.
func ReasonOf(err error) Reason {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

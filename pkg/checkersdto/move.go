package checkersdto

// MoveSummary describes one applied move for the presenter.
type MoveSummary struct {
	State          *SessionState
	MoverName      string
	Notation       string
	Captured       bool
	ChainContinues bool
	Finished       bool
}

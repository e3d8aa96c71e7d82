package checkersdto

// SessionState is the presenter's view of a live match.
type SessionState struct {
	GameID       string
	LightName    string
	DarkName     string
	Moves        []string
	Turn         string
	State        string
	BoardImage   []byte
	LightCount   int
	DarkCount    int
	Selected     string
	Destinations []string
	MustCapture  bool
	Winner       string
	Outcome      string
}

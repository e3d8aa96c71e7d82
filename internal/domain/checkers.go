package domain

import "time"

// CheckersGame is a finished match as archived by the repository.
type CheckersGame struct {
	ID           int64
	GameID       string
	LightID      string
	LightName    string
	DarkID       string
	DarkName     string
	Room         string
	Result       string // light | dark | ""
	ResultMethod string // elimination | resignation
	Moves        []string
	PDN          string
	StartedAt    time.Time
	EndedAt      time.Time
	Duration     time.Duration
}

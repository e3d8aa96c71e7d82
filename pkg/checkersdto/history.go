package checkersdto

import "time"

type CheckersGame struct {
	GameID       string
	LightName    string
	DarkName     string
	Result       string
	ResultMethod string
	Moves        []string
	StartedAt    time.Time
	EndedAt      time.Time
	Duration     time.Duration
}

package pvp

import (
	"strings"
	"time"
)

// ColorChoice is the side the challenger asked for.
type ColorChoice string

const (
	ColorLight  ColorChoice = "light"
	ColorDark   ColorChoice = "dark"
	ColorRandom ColorChoice = "random"
)

func ParseColorChoice(s string) ColorChoice {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "l", "white", "w":
		return ColorLight
	case "dark", "d", "black", "b":
		return ColorDark
	default:
		return ColorRandom
	}
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
	StatusExpired  Status = "EXPIRED"
)

// Challenge is an invitation waiting for the target's answer in Room.
type Challenge struct {
	ID             string
	Room           string
	ChallengerID   string
	ChallengerName string
	TargetID       string
	TargetName     string
	Color          ColorChoice
	CreatedAt      time.Time
	ExpiresAt      time.Time
	Status         Status
}

package pvpcheckers

import (
	"strings"
	"time"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
)

// Status represents a match lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusResigned Status = "RESIGNED"
)

// Result methods recorded with a finished game.
const (
	MethodElimination = "elimination"
	MethodResignation = "resignation"
)

// Game is the persisted state of a match. The engine session is never stored;
// it is rebuilt from Moves (plus Selected) on every command.
type Game struct {
	ID        string         `json:"id"`
	Moves     []string       `json:"moves"`
	Selected  int            `json:"selected,omitempty"` // square number, 0 = none
	Turn      checkers.Color `json:"turn"`
	Status    Status         `json:"status"`
	LightID   string         `json:"light_id"`
	LightName string         `json:"light_name"`
	DarkID    string         `json:"dark_id"`
	DarkName  string         `json:"dark_name"`
	Room      string         `json:"room"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Winner    string         `json:"winner,omitempty"`
	Outcome   string         `json:"outcome,omitempty"` // winning color
	Method    string         `json:"method,omitempty"`
}

// ColorOf reports which side userID plays.
func (g *Game) ColorOf(userID string) (checkers.Color, bool) {
	userID = strings.TrimSpace(userID)
	switch {
	case userID == "":
		return "", false
	case g.LightID == userID:
		return checkers.Light, true
	case g.DarkID == userID:
		return checkers.Dark, true
	}
	return "", false
}

func (g *Game) PlayerID(c checkers.Color) string {
	if c == checkers.Dark {
		return g.DarkID
	}
	return g.LightID
}

func (g *Game) PlayerName(c checkers.Color) string {
	if c == checkers.Dark {
		return g.DarkName
	}
	return g.LightName
}

func (g *Game) Active() bool { return g != nil && g.Status == StatusActive }

// Errors
var (
	ErrInvalidArgs      = errf("invalid arguments")
	ErrGameNotFound     = errf("game not found or expired")
	ErrNoActiveGame     = errf("no active game")
	ErrGameFinished     = errf("game no longer active")
	ErrNotParticipant   = errf("user not in game")
	ErrNotYourTurn      = errf("not your turn")
	ErrConcurrentUpdate = errf("concurrent update")
	ErrSelfMatch        = errf("cannot play against yourself")
	// 같은 방에서 이미 진행 중인 대국이 있는 경우
	ErrAlreadyPlaying = errf("player has active game in this room")
	ErrOpponentBusy   = errf("opponent has active game in this room")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }

func errf(s string) error { return staticErr(s) }

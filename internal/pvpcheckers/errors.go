package pvpcheckers

import (
	"errors"

	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/pvp"
	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

var errorCodes = []struct {
	target error
	code   string
}{
	{checkers.ErrBadNotation, "error.bad_notation"},
	{checkers.ErrGameAlreadyOver, "error.game_over"},
	{ErrGameFinished, "error.game_over"},
	{ErrNoActiveGame, "error.no_game"},
	{ErrGameNotFound, "error.no_game"},
	{ErrNotParticipant, "error.no_game"},
	{ErrNotYourTurn, "error.not_your_turn"},
	{ErrConcurrentUpdate, "error.concurrent"},
	{ErrAlreadyPlaying, "error.already_playing"},
	{ErrOpponentBusy, "error.opponent_busy"},
	{ErrSelfMatch, "error.self_match"},
	{ErrInvalidArgs, "error.bad_notation"},
	{pvp.ErrSelfChallenge, "error.self_match"},
	{pvp.ErrAlreadyPending, "error.already_pending"},
	{pvp.ErrNoPendingForUser, "error.no_challenge"},
	{pvp.ErrInvalidArgs, "error.bad_notation"},
}

// ToDomainError classifies err. Rule rejections map to "reject.<reason>"; anything
// unknown is "error.internal". Only a lost optimistic write is retryable.
func ToDomainError(err error) checkersdto.DomainError {
	if err == nil {
		return checkersdto.DomainError{}
	}
	var de checkersdto.DomainError
	if errors.As(err, &de) {
		return de
	}
	if r := checkers.ReasonOf(err); r != "" {
		return checkersdto.DomainError{Code: "reject." + string(r), Message: err.Error()}
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.target) {
			return checkersdto.DomainError{
				Code:      ec.code,
				Message:   err.Error(),
				Retryable: ec.target == ErrConcurrentUpdate,
			}
		}
	}
	return checkersdto.DomainError{Code: "error.internal", Message: err.Error()}
}

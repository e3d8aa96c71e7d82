package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Cheese-checkers-bot/internal/adapter/checkerspresenter"
	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/config"
	"github.com/park285/Cheese-checkers-bot/internal/irisfast"
	"github.com/park285/Cheese-checkers-bot/internal/msgcat"
	"github.com/park285/Cheese-checkers-bot/internal/obslog"
	"github.com/park285/Cheese-checkers-bot/internal/pvp"
	"github.com/park285/Cheese-checkers-bot/internal/pvpcheckers"
	"github.com/park285/Cheese-checkers-bot/pkg/checkersdto"
)

const commandTimeout = 15 * time.Second

type bot struct {
	cfg        *config.AppConfig
	games      *pvpcheckers.Manager
	challenges *pvp.Manager
	presenter *checkerspresenter.Presenter
	format    *checkerspresenter.Formatter
}

type prefixProvider struct{ prefix string }

func (p prefixProvider) Prefix() string { return p.prefix }

func newBot(cfg *config.AppConfig, games *pvpcheckers.Manager, out checkerspresenter.Sender, cat *msgcat.Catalog) *bot {
	return &bot{
		cfg:        cfg,
		games:      games,
		challenges: pvp.NewManager(cfg.ChallengeTTL),
		presenter:  checkerspresenter.NewPresenter(out),
		format:     checkerspresenter.NewFormatter(cat, prefixProvider{prefix: cfg.BotPrefix}),
	}
}

// handle routes one chat line. Players are keyed by display name since a mention
// only carries the name.
func (b *bot) handle(msg *irisfast.Message) {
	if msg == nil || strings.TrimSpace(msg.Msg) == "" {
		return
	}
	if !b.cfg.RoomAllowed(msg.Room) {
		obslog.L().Debug("room_ignored", zap.String("room", msg.Room))
		return
	}
	text := strings.TrimSpace(msg.Msg)
	if !strings.HasPrefix(text, b.cfg.BotPrefix) {
		return
	}
	parts := strings.Fields(strings.TrimPrefix(text, b.cfg.BotPrefix))
	if len(parts) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch strings.ToLower(parts[0]) {
	case "체커", "checkers":
		b.checkers(ctx, msg, parts[1:])
	case "help", "도움말":
		b.reply(ctx, msg.Room, b.format.Help())
	}
}

func (b *bot) checkers(ctx context.Context, msg *irisfast.Message, args []string) {
	room := msg.Room
	user := strings.TrimSpace(msg.SenderName())
	if len(args) == 0 {
		b.reply(ctx, room, b.format.Help())
		return
	}
	if strings.HasPrefix(args[0], "@") {
		color := ""
		if len(args) > 1 {
			color = args[1]
		}
		b.challenge(ctx, room, user, strings.TrimPrefix(args[0], "@"), color)
		return
	}

	switch strings.ToLower(args[0]) {
	case "수락", "accept":
		b.accept(ctx, room, user)
	case "거절", "decline":
		ch, err := b.challenges.Decline(user, room)
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
		b.reply(ctx, room, b.format.Declined(ch.ChallengerName, ch.TargetName))
	case "선택", "select":
		if len(args) < 2 {
			b.fail(ctx, room, checkers.ErrBadNotation)
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			b.fail(ctx, room, checkers.ErrBadNotation)
			return
		}
		g, sess, err := b.games.Select(ctx, user, room, n)
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
		b.showWith(ctx, room, g, sess, b.format.Selected)
	case "취소", "cancel":
		g, sess, err := b.games.Clear(ctx, user, room)
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
		b.showWith(ctx, room, g, sess, func(*checkersdto.SessionState) string { return b.format.Cleared() })
	case "현황", "status":
		g, err := b.games.GetActiveGameByUserInRoom(ctx, user, room)
		if err == nil && g == nil {
			err = pvpcheckers.ErrNoActiveGame
		}
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
		b.show(ctx, room, g, b.format.Status)
	case "기권", "resign":
		g, err := b.games.Resign(ctx, user, room)
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
		winner := checkers.Color(g.Outcome)
		text := b.format.Resign(g.PlayerName(winner.Opponent()), g.PlayerName(winner))
		b.show(ctx, room, g, func(*checkersdto.SessionState) string { return text })
	case "기록", "history":
		limit := b.cfg.HistoryLimit
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				limit = n
			}
		}
		games, err := b.games.History(ctx, user, limit)
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
		b.reply(ctx, room, b.format.History(checkerspresenter.ToDTOGames(games)))
	case "도움말", "help":
		b.reply(ctx, room, b.format.Help())
	default:
		b.move(ctx, room, user, strings.Join(args, ""))
	}
}

// challenge leaves an invitation for target; the game starts once target accepts.
func (b *bot) challenge(ctx context.Context, room, user, target, color string) {
	target = strings.TrimSpace(target)
	for _, check := range []struct {
		id  string
		err error
	}{{user, pvpcheckers.ErrAlreadyPlaying}, {target, pvpcheckers.ErrOpponentBusy}} {
		g, err := b.games.GetActiveGameByUserInRoom(ctx, check.id, room)
		if err == nil && g != nil {
			err = check.err
		}
		if err != nil {
			b.fail(ctx, room, err)
			return
		}
	}
	ch, err := b.challenges.CreateChallenge(room, user, user, target, target, pvp.ParseColorChoice(color))
	if err != nil {
		b.fail(ctx, room, err)
		return
	}
	obslog.L().Info("checkers_challenge_create",
		zap.String("room", room),
		zap.String("challenger", ch.ChallengerID),
		zap.String("target", ch.TargetID),
		zap.String("color", string(ch.Color)),
	)
	b.reply(ctx, room, b.format.Challenge(ch.ChallengerName, ch.TargetName, b.cfg.ChallengeTTL))
}

func (b *bot) accept(ctx context.Context, room, user string) {
	ch, err := b.challenges.Accept(user, room)
	if err != nil {
		b.fail(ctx, room, err)
		return
	}
	g, err := b.games.CreateGame(ctx, room, ch.ChallengerID, ch.ChallengerName, ch.TargetID, ch.TargetName, string(ch.Color))
	if err != nil {
		b.fail(ctx, room, err)
		return
	}
	b.show(ctx, room, g, func(st *checkersdto.SessionState) string {
		return b.format.Start(st) + "\n" + b.format.Status(st)
	})
}

func (b *bot) move(ctx context.Context, room, user, text string) {
	g, res, err := b.games.PlayMove(ctx, user, room, text)
	if err != nil && pvpcheckers.ToDomainError(err).Retryable {
		obslog.L().Debug("checkers_move_retry", zap.String("room", room), zap.String("user", user))
		g, res, err = b.games.PlayMove(ctx, user, room, text)
	}
	if err != nil {
		b.fail(ctx, room, err)
		return
	}
	b.showWith(ctx, room, g, res.Session, func(st *checkersdto.SessionState) string {
		return b.format.Move(&checkersdto.MoveSummary{
			State:          st,
			MoverName:      g.PlayerName(res.Outcome.Mover),
			Notation:       res.Notation,
			Captured:       res.Outcome.Captured != checkers.NoPiece,
			ChainContinues: res.Outcome.ChainContinues,
			Finished:       res.Outcome.GameOver,
		})
	})
}

func (b *bot) show(ctx context.Context, room string, g *pvpcheckers.Game, text func(*checkersdto.SessionState) string) {
	sess, err := b.games.Session(g)
	if err != nil {
		b.fail(ctx, room, err)
		return
	}
	b.showWith(ctx, room, g, sess, text)
}

func (b *bot) showWith(ctx context.Context, room string, g *pvpcheckers.Game, sess *checkers.Session, text func(*checkersdto.SessionState) string) {
	st, err := b.games.ToDTOWithSession(ctx, g, sess)
	if err != nil {
		b.fail(ctx, room, err)
		return
	}
	if err := b.presenter.Board(ctx, room, text(st), st); err != nil {
		obslog.L().Warn("reply_failed", zap.String("room", room), zap.Error(err))
	}
}

func (b *bot) reply(ctx context.Context, room, text string) {
	if err := b.presenter.Text(ctx, room, text); err != nil {
		obslog.L().Warn("reply_failed", zap.String("room", room), zap.Error(err))
	}
}

func (b *bot) fail(ctx context.Context, room string, err error) {
	if pvpcheckers.ToDomainError(err).Code == "error.internal" {
		obslog.L().Error("checkers_command_failed", zap.String("room", room), zap.Error(err))
	}
	b.reply(ctx, room, b.format.Error(err))
}

package pvpcheckers

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/park285/Cheese-checkers-bot/internal/checkers"
	"github.com/park285/Cheese-checkers-bot/internal/domain"
	"github.com/park285/Cheese-checkers-bot/internal/obslog"
	"github.com/park285/Cheese-checkers-bot/internal/render"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Archive stores finished games.
type Archive interface {
	SaveResult(ctx context.Context, game *domain.CheckersGame) error
	RecentGames(ctx context.Context, userID string, limit int) ([]*domain.CheckersGame, error)
}

type Manager struct {
	store    *Store
	renderer render.BoardRenderer
	archive  Archive
	now      func() time.Time
}

func NewManager(redisURL string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for checkers manager")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewManagerWithStore(NewStore(rdb, ttl)), nil
}

func NewManagerWithStore(store *Store) *Manager {
	return &Manager{store: store, renderer: render.NewBoardRenderer(), now: time.Now}
}

func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	return m.store.Close()
}

// AttachArchive wires persistence for finished games.
func (m *Manager) AttachArchive(a Archive) {
	if m != nil {
		m.archive = a
	}
}

// CreateGame starts a match between challenger and target in room. colorChoice is
// the challenger's side: light, dark or anything else for random.
func (m *Manager) CreateGame(ctx context.Context, room, challengerID, challengerName, targetID, targetName, colorChoice string) (*Game, error) {
	room = strings.TrimSpace(room)
	challengerID = strings.TrimSpace(challengerID)
	targetID = strings.TrimSpace(targetID)
	if room == "" || challengerID == "" || targetID == "" {
		return nil, ErrInvalidArgs
	}
	if challengerID == targetID {
		return nil, ErrSelfMatch
	}
	if g, err := m.GetActiveGameByUserInRoom(ctx, challengerID, room); err != nil {
		return nil, err
	} else if g != nil {
		return nil, ErrAlreadyPlaying
	}
	if g, err := m.GetActiveGameByUserInRoom(ctx, targetID, room); err != nil {
		return nil, err
	} else if g != nil {
		return nil, ErrOpponentBusy
	}

	lightID, lightName := challengerID, strings.TrimSpace(challengerName)
	darkID, darkName := targetID, strings.TrimSpace(targetName)
	c, ok := checkers.ParseColor(colorChoice)
	if !ok {
		if n, _ := rand.Int(rand.Reader, big.NewInt(2)); n != nil && n.Int64() == 0 {
			c = checkers.Dark
		} else {
			c = checkers.Light
		}
	}
	if c == checkers.Dark {
		lightID, lightName, darkID, darkName = darkID, darkName, lightID, lightName
	}

	now := m.now()
	g := &Game{
		ID:        uuid.NewString(),
		Moves:     []string{},
		Turn:      checkers.NewGame().Turn(),
		Status:    StatusActive,
		LightID:   lightID,
		LightName: lightName,
		DarkID:    darkID,
		DarkName:  darkName,
		Room:      room,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Save(ctx, g); err != nil {
		return nil, err
	}
	if err := m.store.Index(ctx, g.ID, g.LightID, g.DarkID); err != nil {
		return nil, err
	}
	obslog.L().Info("checkers_game_create",
		zap.String("game_id", g.ID),
		zap.String("room", g.Room),
		zap.String("light_id", g.LightID),
		zap.String("dark_id", g.DarkID),
	)
	return g, nil
}

// GetActiveGameByUser returns the most recently updated active game, or nil.
func (m *Manager) GetActiveGameByUser(ctx context.Context, userID string) (*Game, error) {
	return m.latestActive(ctx, userID, func(*Game) bool { return true })
}

// GetActiveGameByUserInRoom is GetActiveGameByUser limited to one room.
func (m *Manager) GetActiveGameByUserInRoom(ctx context.Context, userID, room string) (*Game, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return nil, nil
	}
	return m.latestActive(ctx, userID, func(g *Game) bool { return g.Room == room })
}

func (m *Manager) latestActive(ctx context.Context, userID string, keep func(*Game) bool) (*Game, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	ids, err := m.store.GameIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	var list []*Game
	for _, id := range ids {
		g, gerr := m.store.Load(ctx, id)
		if gerr != nil {
			obslog.L().Warn("checkers_game_load_skipped", zap.String("game_id", id), zap.String("user_id", userID), zap.Error(gerr))
			continue
		}
		if g == nil || !g.Active() || !keep(g) {
			continue
		}
		list = append(list, g)
	}
	if len(list) == 0 {
		return nil, nil
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	return list[0], nil
}

// LoadGame returns the game by id, or nil when it expired.
func (m *Manager) LoadGame(ctx context.Context, id string) (*Game, error) {
	return m.store.Load(ctx, id)
}

// Session rebuilds the engine state of g.
func (m *Manager) Session(g *Game) (*checkers.Session, error) {
	return rebuild(g)
}

// Select makes the piece on square the user's active piece.
func (m *Manager) Select(ctx context.Context, userID, room string, square int) (*Game, *checkers.Session, error) {
	sq, ok := checkers.SquareFromNumber(square)
	if !ok {
		return nil, nil, fmt.Errorf("%w: square %d out of range", checkers.ErrBadNotation, square)
	}
	var sess *checkers.Session
	g, err := m.command(ctx, userID, room, func(cur *Game, s *checkers.Session) error {
		next, err := s.SelectAt(sq)
		if err != nil {
			return err
		}
		cur.Selected = selectedNumber(next)
		sess = next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	obslog.L().Debug("checkers_select", zap.String("game_id", g.ID), zap.String("user_id", userID), zap.Int("square", square))
	return g, sess, nil
}

// Clear drops the user's selection.
func (m *Manager) Clear(ctx context.Context, userID, room string) (*Game, *checkers.Session, error) {
	var sess *checkers.Session
	g, err := m.command(ctx, userID, room, func(cur *Game, s *checkers.Session) error {
		next, err := s.ClearSelection()
		if err != nil {
			return err
		}
		cur.Selected = 0
		sess = next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return g, sess, nil
}

// MoveResult is what PlayMove reports back to the caller.
type MoveResult struct {
	Notation string
	Outcome  checkers.Outcome
	Session  *checkers.Session
}

// PlayMove applies one move written as "11-15", "15x22" or a bare destination for
// the selected piece.
func (m *Manager) PlayMove(ctx context.Context, userID, room, text string) (*Game, MoveResult, error) {
	var res MoveResult
	g, err := m.command(ctx, userID, room, func(cur *Game, s *checkers.Session) error {
		next, out, err := s.Play(text)
		if err != nil {
			return err
		}
		res = MoveResult{Notation: checkers.FormatMove(out.Move), Outcome: out, Session: next}
		cur.Moves = append(cur.Moves, res.Notation)
		cur.Turn = next.Turn()
		cur.Selected = selectedNumber(next)
		if out.GameOver {
			cur.Status = StatusFinished
			cur.Outcome = string(out.Winner)
			cur.Winner = cur.PlayerID(out.Winner)
			cur.Method = MethodElimination
		}
		return nil
	})
	if err != nil {
		return nil, MoveResult{}, err
	}
	obslog.L().Info("checkers_move",
		zap.String("game_id", g.ID),
		zap.String("user_id", strings.TrimSpace(userID)),
		zap.String("move", res.Notation),
		zap.Bool("chain", res.Outcome.ChainContinues),
		zap.String("turn", string(g.Turn)),
		zap.String("status", string(g.Status)),
	)
	if g.Status != StatusActive {
		_ = m.persistIfFinal(ctx, g)
	}
	return g, res, nil
}

// Resign ends the user's game in room with the opponent as winner.
func (m *Manager) Resign(ctx context.Context, userID, room string) (*Game, error) {
	g, err := m.GetActiveGameByUserInRoom(ctx, userID, room)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNoActiveGame
	}
	g, err = m.store.Update(ctx, g.ID, func(cur *Game) error {
		if !cur.Active() {
			return ErrGameFinished
		}
		c, ok := cur.ColorOf(userID)
		if !ok {
			return ErrNotParticipant
		}
		cur.Status = StatusResigned
		cur.Outcome = string(c.Opponent())
		cur.Winner = cur.PlayerID(c.Opponent())
		cur.Method = MethodResignation
		cur.Selected = 0
		cur.UpdatedAt = m.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	obslog.L().Info("checkers_resign",
		zap.String("game_id", g.ID),
		zap.String("resigner", strings.TrimSpace(userID)),
		zap.String("winner", g.Winner),
	)
	_ = m.persistIfFinal(ctx, g)
	return g, nil
}

// History lists the user's archived games, newest first.
func (m *Manager) History(ctx context.Context, userID string, limit int) ([]*domain.CheckersGame, error) {
	if m.archive == nil {
		return nil, nil
	}
	return m.archive.RecentGames(ctx, strings.TrimSpace(userID), limit)
}

// command runs fn against the rebuilt session of the user's active game in room,
// after checking participation and turn.
func (m *Manager) command(ctx context.Context, userID, room string, fn func(*Game, *checkers.Session) error) (*Game, error) {
	g, err := m.GetActiveGameByUserInRoom(ctx, userID, room)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNoActiveGame
	}
	plies := len(g.Moves)
	return m.store.Update(ctx, g.ID, func(cur *Game) error {
		if !cur.Active() {
			return ErrGameFinished
		}
		if len(cur.Moves) != plies {
			return ErrConcurrentUpdate
		}
		c, ok := cur.ColorOf(userID)
		if !ok {
			return ErrNotParticipant
		}
		if c != cur.Turn {
			return ErrNotYourTurn
		}
		s, err := rebuild(cur)
		if err != nil {
			return err
		}
		if err := fn(cur, s); err != nil {
			return err
		}
		cur.UpdatedAt = m.now()
		return nil
	})
}

// rebuild replays the move log and restores a selection made outside a chain.
func rebuild(g *Game) (*checkers.Session, error) {
	s, err := checkers.Replay(g.Moves)
	if err != nil {
		return nil, fmt.Errorf("rebuild game %s: %w", g.ID, err)
	}
	if g.Selected == 0 || s.State() != checkers.AwaitingSelection {
		return s, nil
	}
	sq, ok := checkers.SquareFromNumber(g.Selected)
	if !ok {
		return s, nil
	}
	if next, err := s.SelectAt(sq); err == nil {
		s = next
	}
	return s, nil
}

func selectedNumber(s *checkers.Session) int {
	p, ok := s.Selected()
	if !ok {
		return 0
	}
	n, _ := checkers.SquareNumber(p.Square)
	return n
}

// persistIfFinal archives a game that is no longer active.
func (m *Manager) persistIfFinal(ctx context.Context, g *Game) error {
	if m == nil || m.archive == nil || g == nil || g.Active() {
		return nil
	}
	rec, err := ToRecord(g)
	if err != nil {
		obslog.L().Error("checkers_result_persist_error", zap.String("game_id", g.ID), zap.Error(err))
		return err
	}
	if err := m.archive.SaveResult(ctx, rec); err != nil {
		obslog.L().Error("checkers_result_persist_error", zap.String("game_id", g.ID), zap.String("outcome", g.Outcome), zap.Error(err))
		return err
	}
	obslog.L().Info("checkers_result_persist", zap.String("game_id", g.ID), zap.String("outcome", g.Outcome), zap.String("method", g.Method))
	return nil
}

package pvpcheckers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/Cheese-checkers-bot/internal/domain"
)

// MemoryRepository is the archive used when no database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byGame map[string]*domain.CheckersGame
	byUser map[string][]string // user id -> game ids
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byGame: make(map[string]*domain.CheckersGame),
		byUser: make(map[string][]string),
	}
}

func (m *MemoryRepository) SaveResult(ctx context.Context, game *domain.CheckersGame) error {
	if game == nil || strings.TrimSpace(game.GameID) == "" {
		return ErrInvalidArgs
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *game
	cp.Moves = append([]string(nil), game.Moves...)
	if prev, ok := m.byGame[game.GameID]; ok {
		cp.ID = prev.ID
		m.byGame[game.GameID] = &cp
		return nil
	}
	m.nextID++
	cp.ID = m.nextID
	m.byGame[game.GameID] = &cp
	for _, u := range []string{game.LightID, game.DarkID} {
		if strings.TrimSpace(u) != "" {
			m.byUser[u] = append(m.byUser[u], game.GameID)
		}
	}
	return nil
}

func (m *MemoryRepository) RecentGames(ctx context.Context, userID string, limit int) ([]*domain.CheckersGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byUser[userID]
	items := make([]*domain.CheckersGame, 0, len(ids))
	for _, id := range ids {
		cp := *m.byGame[id]
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

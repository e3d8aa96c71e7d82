package pvpcheckers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Store keeps game records as JSON plus a per-user set of game ids.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func gameKey(id string) string        { return "checkers:game:" + strings.TrimSpace(id) }
func idxUserKey(userID string) string { return "checkers:index:user:" + strings.TrimSpace(userID) }

func (s *Store) Save(ctx context.Context, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, gameKey(g.ID), raw, s.ttl).Err()
}

// Load returns nil, nil when the game expired or never existed.
func (s *Store) Load(ctx context.Context, id string) (*Game, error) {
	raw, err := s.rdb.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Index adds id to each user's index and refreshes the index TTL to match the game.
func (s *Store) Index(ctx context.Context, id string, userIDs ...string) error {
	for _, u := range userIDs {
		if strings.TrimSpace(u) == "" {
			continue
		}
		key := idxUserKey(u)
		if err := s.rdb.SAdd(ctx, key, id).Err(); err != nil {
			return err
		}
		_ = s.rdb.Expire(ctx, key, s.ttl).Err()
	}
	return nil
}

func (s *Store) GameIDs(ctx context.Context, userID string) ([]string, error) {
	return s.rdb.SMembers(ctx, idxUserKey(userID)).Result()
}

// Update loads the game under WATCH, lets fn modify it and writes it back in a
// transaction together with a TTL refresh of both players' indexes. A concurrent
// write to the same key yields ErrConcurrentUpdate.
func (s *Store) Update(ctx context.Context, id string, fn func(*Game) error) (*Game, error) {
	key := gameKey(id)
	var out *Game
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		var cur Game
		if err := json.Unmarshal(raw, &cur); err != nil {
			return err
		}
		if err := fn(&cur); err != nil {
			return err
		}
		newRaw, err := json.Marshal(&cur)
		if err != nil {
			return err
		}
		pipe := tx.TxPipeline()
		pipe.Set(ctx, key, newRaw, s.ttl)
		for _, u := range []string{cur.LightID, cur.DarkID} {
			if strings.TrimSpace(u) != "" {
				pipe.Expire(ctx, idxUserKey(u), s.ttl)
			}
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		out = &cur
		return nil
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConcurrentUpdate
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}

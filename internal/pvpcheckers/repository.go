package pvpcheckers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/park285/Cheese-checkers-bot/internal/domain"
)

const schemaDDL = `CREATE TABLE IF NOT EXISTS checkers_games (
    id            BIGSERIAL PRIMARY KEY,
    game_id       TEXT UNIQUE NOT NULL,
    light_id      TEXT NOT NULL,
    light_name    TEXT NOT NULL,
    dark_id       TEXT NOT NULL,
    dark_name     TEXT NOT NULL,
    room          TEXT NOT NULL,
    result        TEXT NOT NULL,
    result_method TEXT NOT NULL,
    moves         JSONB NOT NULL,
    pdn           TEXT NOT NULL,
    started_at    TIMESTAMPTZ NOT NULL,
    ended_at      TIMESTAMPTZ NOT NULL,
    duration_ms   BIGINT
);
CREATE INDEX IF NOT EXISTS checkers_games_light_idx ON checkers_games (light_id, ended_at DESC);
CREATE INDEX IF NOT EXISTS checkers_games_dark_idx ON checkers_games (dark_id, ended_at DESC);`

// Repository archives finished games in Postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveResult upserts a finished game keyed by game id.
func (r *Repository) SaveResult(ctx context.Context, g *domain.CheckersGame) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}
	movesRaw, err := json.Marshal(g.Moves)
	if err != nil {
		return err
	}

	const q = `INSERT INTO checkers_games (
        game_id, light_id, light_name, dark_id, dark_name, room,
        result, result_method, moves, pdn, started_at, ended_at, duration_ms
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13
      ) ON CONFLICT (game_id) DO UPDATE SET
        light_id=EXCLUDED.light_id,
        light_name=EXCLUDED.light_name,
        dark_id=EXCLUDED.dark_id,
        dark_name=EXCLUDED.dark_name,
        room=EXCLUDED.room,
        result=EXCLUDED.result,
        result_method=EXCLUDED.result_method,
        moves=EXCLUDED.moves,
        pdn=EXCLUDED.pdn,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		g.GameID,
		g.LightID, g.LightName,
		g.DarkID, g.DarkName,
		g.Room,
		g.Result, g.ResultMethod, string(movesRaw), g.PDN,
		g.StartedAt, g.EndedAt, g.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("upsert checkers game: %w", err)
	}
	return nil
}

// RecentGames returns games the user played on either side, newest first.
func (r *Repository) RecentGames(ctx context.Context, userID string, limit int) ([]*domain.CheckersGame, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT
			id, game_id, light_id, light_name, dark_id, dark_name, room,
			result, result_method, moves, pdn, started_at, ended_at, duration_ms
		FROM checkers_games
		WHERE light_id = $1 OR dark_id = $1
		ORDER BY ended_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select checkers games: %w", err)
	}
	defer rows.Close()

	games := make([]*domain.CheckersGame, 0, limit)
	for rows.Next() {
		var (
			game       domain.CheckersGame
			movesJSON  []byte
			durationMS sql.NullInt64
		)
		if err := rows.Scan(
			&game.ID,
			&game.GameID,
			&game.LightID,
			&game.LightName,
			&game.DarkID,
			&game.DarkName,
			&game.Room,
			&game.Result,
			&game.ResultMethod,
			&movesJSON,
			&game.PDN,
			&game.StartedAt,
			&game.EndedAt,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("scan checkers game: %w", err)
		}
		if durationMS.Valid {
			game.Duration = time.Duration(durationMS.Int64) * time.Millisecond
		}
		if err := json.Unmarshal(movesJSON, &game.Moves); err != nil {
			return nil, fmt.Errorf("unmarshal moves: %w", err)
		}
		games = append(games, &game)
	}
	return games, rows.Err()
}

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	IrisBaseURL string
	IrisWSURL   string

	BotPrefix string

	XUserID    string
	XUserEmail string
	XSessionID string

	RedisURL    string
	DatabaseURL string

	AllowedRooms []string

	GameTTL      time.Duration
	ChallengeTTL time.Duration
	HistoryLimit int
	MessagesDir  string

	EgressMode   string // http | ws | auto
	EgressDryRun bool
}

const (
	defaultGameTTL      = 24 * time.Hour
	defaultChallengeTTL = 10 * time.Minute
	defaultHistoryLimit = 10
)

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		GameTTL:      defaultGameTTL,
		ChallengeTTL: defaultChallengeTTL,
		HistoryLimit: defaultHistoryLimit,
		EgressMode:   "http",
	}

	cfg.IrisBaseURL = env("IRIS_BASE_URL")
	cfg.IrisWSURL = env("IRIS_WS_URL")
	cfg.BotPrefix = env("BOT_PREFIX")

	cfg.XUserID = env("X_USER_ID")
	cfg.XUserEmail = env("X_USER_EMAIL")
	cfg.XSessionID = env("X_SESSION_ID")

	cfg.RedisURL = env("REDIS_URL")
	cfg.DatabaseURL = env("DATABASE_URL")
	cfg.AllowedRooms = splitList(env("ALLOWED_ROOMS"))
	cfg.MessagesDir = env("MESSAGES_DIR")

	cfg.GameTTL = durationEnv("CHECKERS_GAME_TTL", cfg.GameTTL)
	cfg.ChallengeTTL = durationEnv("CHECKERS_CHALLENGE_TTL", cfg.ChallengeTTL)
	if v := env("CHECKERS_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}

	switch m := strings.ToLower(env("EGRESS_MODE")); m {
	case "http", "ws", "auto":
		cfg.EgressMode = m
	}
	if v := env("EGRESS_DRYRUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EgressDryRun = b
		}
	}

	if cfg.IrisBaseURL == "" {
		return nil, errors.New("IRIS_BASE_URL is required")
	}
	if cfg.IrisWSURL == "" {
		return nil, errors.New("IRIS_WS_URL is required")
	}
	if cfg.BotPrefix == "" {
		return nil, errors.New("BOT_PREFIX is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}

// RoomAllowed reports whether room may host games. An empty allow-list admits every room.
func (c *AppConfig) RoomAllowed(room string) bool {
	if len(c.AllowedRooms) == 0 {
		return true
	}
	for _, r := range c.AllowedRooms {
		if r == room {
			return true
		}
	}
	return false
}

// Headers returns the X-User-* headers Iris expects on requests and the handshake.
func (c *AppConfig) Headers() map[string]string {
	h := map[string]string{}
	if c.XUserID != "" {
		h["X-User-Id"] = c.XUserID
	}
	if c.XUserEmail != "" {
		h["X-User-Email"] = c.XUserEmail
	}
	if c.XSessionID != "" {
		h["X-Session-Id"] = c.XSessionID
	}
	return h
}

func env(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// durationEnv는 초 단위 정수 또는 "12h" 같은 duration 둘 다 허용
func durationEnv(k string, def time.Duration) time.Duration {
	v := env(k)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

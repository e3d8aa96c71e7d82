package pvp

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidArgs      = errors.New("invalid arguments")
	ErrSelfChallenge    = errors.New("cannot challenge yourself")
	ErrAlreadyPending   = errors.New("target already has a pending challenge")
	ErrNoPendingForUser = errors.New("no pending challenge for target user")
)

// DefaultTTL is how long a challenge waits for an answer.
const DefaultTTL = 10 * time.Minute

// Manager holds pending challenges in memory, keyed by target and room.
type Manager struct {
	mu sync.Mutex
	// target -> challenges (append-only; last is latest)
	byTarget map[string][]*Challenge
	seq      uint64
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{byTarget: make(map[string][]*Challenge), ttl: ttl, now: time.Now}
}

// CreateChallenge records a pending invitation from challenger to target in room.
func (m *Manager) CreateChallenge(room, challengerID, challengerName, targetID, targetName string, color ColorChoice) (*Challenge, error) {
	room, challengerID, targetID = strings.TrimSpace(room), strings.TrimSpace(challengerID), strings.TrimSpace(targetID)
	if room == "" || challengerID == "" || targetID == "" {
		return nil, ErrInvalidArgs
	}
	if challengerID == targetID {
		return nil, ErrSelfChallenge
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	list := m.prune(targetID, now)
	if latestPendingIndex(list, room) >= 0 {
		return nil, ErrAlreadyPending
	}
	ch := &Challenge{
		ID:             m.nextID(now),
		Room:           room,
		ChallengerID:   challengerID,
		ChallengerName: strings.TrimSpace(challengerName),
		TargetID:       targetID,
		TargetName:     strings.TrimSpace(targetName),
		Color:          color,
		CreatedAt:      now,
		ExpiresAt:      now.Add(m.ttl),
		Status:         StatusPending,
	}
	m.byTarget[targetID] = append(list, ch)
	return ch, nil
}

// Accept resolves the latest pending challenge addressed to targetID in room.
func (m *Manager) Accept(targetID, room string) (*Challenge, error) {
	return m.resolve(targetID, room, StatusAccepted)
}

func (m *Manager) Decline(targetID, room string) (*Challenge, error) {
	return m.resolve(targetID, room, StatusDeclined)
}

// Pending returns the open challenge for targetID in room, or nil.
func (m *Manager) Pending(targetID, room string) *Challenge {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.prune(strings.TrimSpace(targetID), m.now())
	if idx := latestPendingIndex(list, strings.TrimSpace(room)); idx >= 0 {
		c := *list[idx]
		return &c
	}
	return nil
}

func (m *Manager) resolve(targetID, room string, status Status) (*Challenge, error) {
	targetID, room = strings.TrimSpace(targetID), strings.TrimSpace(room)
	if targetID == "" || room == "" {
		return nil, ErrInvalidArgs
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.prune(targetID, m.now())
	idx := latestPendingIndex(list, room)
	if idx < 0 {
		return nil, ErrNoPendingForUser
	}
	ch := list[idx]
	ch.Status = status
	m.byTarget[targetID] = append(list[:idx], list[idx+1:]...)
	c := *ch
	return &c, nil
}

// prune expires stale challenges and drops resolved ones. Caller holds mu.
func (m *Manager) prune(targetID string, now time.Time) []*Challenge {
	list := m.byTarget[targetID]
	kept := list[:0]
	for _, ch := range list {
		if ch.Status == StatusPending && now.After(ch.ExpiresAt) {
			ch.Status = StatusExpired
		}
		if ch.Status == StatusPending {
			kept = append(kept, ch)
		}
	}
	if len(kept) == 0 {
		delete(m.byTarget, targetID)
		return nil
	}
	m.byTarget[targetID] = kept
	return kept
}

func latestPendingIndex(list []*Challenge, room string) int {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Status == StatusPending && list[i].Room == room {
			return i
		}
	}
	return -1
}

func (m *Manager) nextID(now time.Time) string {
	n := atomic.AddUint64(&m.seq, 1)
	return fmt.Sprintf("ch-%d-%d", now.UnixNano(), n)
}

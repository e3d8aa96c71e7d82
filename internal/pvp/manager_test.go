package pvp

import (
	"errors"
	"testing"
	"time"
)

func newTestManager() (*Manager, *time.Time) {
	m := NewManager(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestChallengeAccept(t *testing.T) {
	m, _ := newTestManager()
	ch, err := m.CreateChallenge("room", "A", "Alice", "B", "Bob", ParseColorChoice("w"))
	if err != nil {
		t.Fatalf("CreateChallenge: %v", err)
	}
	if ch.Status != StatusPending || ch.Color != ColorLight {
		t.Fatalf("unexpected challenge: %+v", ch)
	}
	if _, err := m.CreateChallenge("room", "C", "Carol", "B", "Bob", ColorRandom); !errors.Is(err, ErrAlreadyPending) {
		t.Fatalf("second pending for B: %v", err)
	}
	if _, err := m.CreateChallenge("other", "C", "Carol", "B", "Bob", ColorRandom); err != nil {
		t.Fatalf("other room should be independent: %v", err)
	}
	if _, err := m.Accept("B", "elsewhere"); !errors.Is(err, ErrNoPendingForUser) {
		t.Fatalf("accept in wrong room: %v", err)
	}

	got, err := m.Accept("B", "room")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if got.ID != ch.ID || got.Status != StatusAccepted || got.ChallengerName != "Alice" {
		t.Fatalf("accepted = %+v", got)
	}
	if _, err := m.Accept("B", "room"); !errors.Is(err, ErrNoPendingForUser) {
		t.Fatalf("double accept: %v", err)
	}
}

func TestChallengeRejections(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.CreateChallenge("room", "A", "Alice", "A", "Alice", ColorRandom); !errors.Is(err, ErrSelfChallenge) {
		t.Fatalf("self challenge: %v", err)
	}
	if _, err := m.CreateChallenge("room", "", "", "B", "Bob", ColorRandom); !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("missing challenger: %v", err)
	}
	if _, err := m.Decline("B", "room"); !errors.Is(err, ErrNoPendingForUser) {
		t.Fatalf("decline without challenge: %v", err)
	}
}

func TestChallengeDeclineAndExpiry(t *testing.T) {
	m, now := newTestManager()
	if _, err := m.CreateChallenge("room", "A", "Alice", "B", "Bob", ColorDark); err != nil {
		t.Fatalf("CreateChallenge: %v", err)
	}
	ch, err := m.Decline("B", "room")
	if err != nil || ch.Status != StatusDeclined {
		t.Fatalf("Decline = %+v, %v", ch, err)
	}

	if _, err := m.CreateChallenge("room", "A", "Alice", "B", "Bob", ColorDark); err != nil {
		t.Fatalf("challenge after decline: %v", err)
	}
	if m.Pending("B", "room") == nil {
		t.Fatalf("pending challenge not visible")
	}
	*now = now.Add(2 * time.Minute)
	if m.Pending("B", "room") != nil {
		t.Fatalf("challenge should have expired")
	}
	if _, err := m.Accept("B", "room"); !errors.Is(err, ErrNoPendingForUser) {
		t.Fatalf("accept expired: %v", err)
	}
	if _, err := m.CreateChallenge("room", "C", "Carol", "B", "Bob", ColorRandom); err != nil {
		t.Fatalf("new challenge after expiry: %v", err)
	}
}

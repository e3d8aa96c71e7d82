package pvpcheckers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/park285/Cheese-checkers-bot/internal/domain"
)

func TestBuildPDN(t *testing.T) {
	g := &Game{
		ID:        "g1",
		Moves:     []string{"22-18", "11-15", "18x11", "8x15"},
		LightName: `Al"ice`,
		DarkName:  "Bob",
		Outcome:   "light",
		Method:    MethodResignation,
		UpdatedAt: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC),
	}
	pdn, err := BuildPDN(g)
	if err != nil {
		t.Fatalf("BuildPDN: %v", err)
	}
	for _, want := range []string{
		`[Date "2025.03.09"]`,
		`[Light "Al'ice"]`,
		`[Termination "resignation"]`,
		`[Result "1-0"]`,
		"1. 22-18 11-15 2. 18x11 8x15 1-0",
	} {
		if !strings.Contains(pdn, want) {
			t.Fatalf("pdn missing %q:\n%s", want, pdn)
		}
	}
}

func TestBuildPDNMergesChain(t *testing.T) {
	g := &Game{
		Moves:     []string{"21-17", "10-15", "23-18", "9-14", "17x10", "10x19"},
		UpdatedAt: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC),
	}
	pdn, err := BuildPDN(g)
	if err != nil {
		t.Fatalf("BuildPDN: %v", err)
	}
	if !strings.HasSuffix(pdn, "1. 21-17 10-15 2. 23-18 9-14 3. 17x10x19 *") {
		t.Fatalf("chain not merged:\n%s", pdn)
	}
}

func TestBuildPDNRejectsBadLog(t *testing.T) {
	if _, err := BuildPDN(&Game{Moves: []string{"11-15"}}); err == nil {
		t.Fatalf("expected error for a dark move played first")
	}
}

func TestToRecordDuration(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	rec, err := ToRecord(&Game{ID: "g", CreatedAt: start, UpdatedAt: start.Add(90 * time.Second), Outcome: "dark"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	if rec.Duration != 90*time.Second || rec.Result != "dark" || !strings.HasSuffix(rec.PDN, "0-1") {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestMemoryRepositoryOrderAndUpsert(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := repo.SaveResult(ctx, &domain.CheckersGame{GameID: id, LightID: "u1", DarkID: "u2", EndedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}
	if err := repo.SaveResult(ctx, &domain.CheckersGame{GameID: "a", LightID: "u1", DarkID: "u2", Result: "light", EndedAt: base}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.RecentGames(ctx, "u2", 2)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(got) != 2 || got[0].GameID != "c" || got[1].GameID != "b" {
		t.Fatalf("order = %v", got)
	}
	all, _ := repo.RecentGames(ctx, "u1", 0)
	if len(all) != 3 || all[2].Result != "light" {
		t.Fatalf("upsert not applied: %+v", all)
	}
	if err := repo.SaveResult(ctx, &domain.CheckersGame{}); err == nil {
		t.Fatalf("expected error without game id")
	}
}

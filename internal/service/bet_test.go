package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

func TestPlaceBetAppliesBaseTax(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	// Well outside the late window, so the base rate applies.
	openRound(t, repo, time.Now().Add(time.Minute))
	fundUser(t, svc, repo, "alice", "", "5")

	bet, err := svc.PlaceBet(ctx, "alice", "Alice", false, models.SideGreen, d("1"))
	if err != nil {
		t.Fatalf("place bet: %v", err)
	}
	if !bet.PoolAmount.Equal(d("0.95")) {
		t.Fatalf("pool amount = %s, want 0.95 at base tax", bet.PoolAmount)
	}

	round, _ := repo.GetRound(ctx)
	if !round.GreenPool.Equal(d("0.95")) {
		t.Fatalf("green pool = %s, want 0.95", round.GreenPool)
	}
	if !round.HouseProfit.Equal(d("0.05")) {
		t.Fatalf("house profit = %s, want 0.05", round.HouseProfit)
	}
	if got := userBalance(t, svc, "alice"); !got.Equal(d("4")) {
		t.Fatalf("balance = %s, want 4", got)
	}
}

func TestPlaceBetMaxTaxAtDeadline(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	// Clock already past the end: the rate is pinned at the maximum.
	openRound(t, repo, time.Now().Add(-time.Second))
	fundUser(t, svc, repo, "sniper", "", "5")

	bet, err := svc.PlaceBet(ctx, "sniper", "Sniper", false, models.SideRed, d("1"))
	if err != nil {
		t.Fatalf("place bet: %v", err)
	}
	if !bet.PoolAmount.Equal(d("0.5")) {
		t.Fatalf("pool amount = %s, want 0.5 at max tax", bet.PoolAmount)
	}
	// Tax plus pool always reconstruct the original stake.
	if !bet.OriginalAmount.Sub(bet.PoolAmount).Equal(d("0.5")) {
		t.Fatalf("tax = %s, want 0.5", bet.OriginalAmount.Sub(bet.PoolAmount))
	}
}

func TestPlaceBetLateWindowRaisesTax(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	// Halfway into the 20s late window the rate sits between base and max.
	openRound(t, repo, time.Now().Add(10*time.Second))
	fundUser(t, svc, repo, "late", "", "5")

	bet, err := svc.PlaceBet(ctx, "late", "Late", false, models.SideGreen, d("1"))
	if err != nil {
		t.Fatalf("place bet: %v", err)
	}
	if !bet.PoolAmount.LessThan(d("0.95")) || !bet.PoolAmount.GreaterThan(d("0.5")) {
		t.Fatalf("pool amount = %s, want strictly between 0.5 and 0.95", bet.PoolAmount)
	}
}

func TestPlaceBetValidation(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	openRound(t, repo, time.Now().Add(time.Minute))
	fundUser(t, svc, repo, "alice", "", "0.5")

	if _, err := svc.PlaceBet(ctx, "alice", "Alice", false, models.SideDraw, d("1")); err == nil {
		t.Fatal("DRAW accepted as a bet side")
	}
	if _, err := svc.PlaceBet(ctx, "alice", "Alice", false, models.SideGreen, d("0.05")); !errors.Is(err, game.ErrBetTooSmall) {
		t.Fatalf("below minimum err = %v", err)
	}
	if _, err := svc.PlaceBet(ctx, "alice", "Alice", false, models.SideGreen, d("3")); !errors.Is(err, game.ErrBetLimitExceeded) {
		t.Fatalf("above maximum err = %v", err)
	}
	if _, err := svc.PlaceBet(ctx, "alice", "Alice", false, models.SideGreen, d("1")); !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("overdraw err = %v", err)
	}
	if _, err := svc.PlaceBet(ctx, "ghost", "Ghost", false, models.SideGreen, d("1")); !errors.Is(err, game.ErrUserNotFound) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestPlaceBetClosedRound(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	// Seeded round sits in WAITING; no wager may land.
	if _, err := repo.EnsureRound(ctx, d("0"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("ensure round: %v", err)
	}
	fundUser(t, svc, repo, "alice", "", "5")

	_, err := svc.PlaceBet(ctx, "alice", "Alice", false, models.SideGreen, d("1"))
	if !errors.Is(err, game.ErrRoundNotOpen) {
		t.Fatalf("err = %v, want round not open", err)
	}
}

func TestIsWhaleBet(t *testing.T) {
	svc, _ := newTestService(t, testConfig(), &fakeFetcher{})

	if svc.IsWhaleBet(d("4.99")) {
		t.Fatal("below threshold flagged as whale")
	}
	if !svc.IsWhaleBet(d("5")) {
		t.Fatal("threshold bet not flagged as whale")
	}
}

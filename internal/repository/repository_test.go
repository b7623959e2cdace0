package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/db"
	"github.com/solarena/rlgl/internal/models"
	"github.com/solarena/rlgl/utils"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	gdb, err := db.ConnectMemoryDb()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	logger := utils.InitLogger()
	if err := db.Migrate(gdb, true, logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(gdb, logger)
}

func newTestUser(t *testing.T, r *Repository, uid, balance string) {
	t.Helper()
	ctx := context.Background()
	if err := r.CreateUser(ctx, &models.UserAccount{UID: uid, DisplayName: uid}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := r.CreditBalance(ctx, uid, d(balance)); err != nil {
		t.Fatalf("fund user: %v", err)
	}
}

func balanceOf(t *testing.T, r *Repository, uid string) decimal.Decimal {
	t.Helper()
	user, err := r.GetUser(context.Background(), uid)
	if err != nil || user == nil {
		t.Fatalf("get user %s: %v", uid, err)
	}
	return user.Balance
}

// playingRound seeds the singleton record and advances it into PLAYING.
func playingRound(t *testing.T, r *Repository) *models.Round {
	t.Helper()
	ctx := context.Background()
	round, err := r.EnsureRound(ctx, decimal.Zero, time.Now())
	if err != nil {
		t.Fatalf("ensure round: %v", err)
	}
	if err := r.TransitionToPlaying(ctx, round, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("to playing: %v", err)
	}
	round, err = r.GetRound(ctx)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	return round
}

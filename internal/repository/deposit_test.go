package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/solarena/rlgl/internal/game"
)

func TestClaimDepositCreditsOnce(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "0")

	if err := r.ClaimDeposit(ctx, "alice", "sig-1", d("0.5")); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	err := r.ClaimDeposit(ctx, "alice", "sig-1", d("0.5"))
	if !errors.Is(err, game.ErrSignatureAlreadyClaimed) {
		t.Fatalf("second claim err = %v, want already claimed", err)
	}

	if got := balanceOf(t, r, "alice"); !got.Equal(d("0.5")) {
		t.Fatalf("balance = %s, want single credit 0.5", got)
	}
}

func TestClaimDepositSignatureIsGlobal(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "0")
	newTestUser(t, r, "mallory", "0")

	if err := r.ClaimDeposit(ctx, "alice", "sig-2", d("1")); err != nil {
		t.Fatalf("claim: %v", err)
	}
	// A different user replaying the same signature must also lose.
	err := r.ClaimDeposit(ctx, "mallory", "sig-2", d("1"))
	if !errors.Is(err, game.ErrSignatureAlreadyClaimed) {
		t.Fatalf("replay err = %v, want already claimed", err)
	}
	if got := balanceOf(t, r, "mallory"); !got.IsZero() {
		t.Fatalf("replaying user credited: %s", got)
	}
}

func TestSignatureClaimed(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "0")

	claimed, err := r.SignatureClaimed(ctx, "sig-3")
	if err != nil || claimed {
		t.Fatalf("fresh signature claimed = %v, err = %v", claimed, err)
	}
	if err := r.ClaimDeposit(ctx, "alice", "sig-3", d("2")); err != nil {
		t.Fatalf("claim: %v", err)
	}
	claimed, err = r.SignatureClaimed(ctx, "sig-3")
	if err != nil || !claimed {
		t.Fatalf("consumed signature claimed = %v, err = %v", claimed, err)
	}
}

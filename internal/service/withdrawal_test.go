package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

func TestWithdrawalLifecycle(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	fundUser(t, svc, repo, "alice", "Wallet111", "3")

	w, err := svc.RequestWithdrawal(ctx, "alice", d("2"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if w.Status != models.WithdrawalPending || w.WalletAddress != "Wallet111" {
		t.Fatalf("unexpected request: %+v", w)
	}
	if got := userBalance(t, svc, "alice"); !got.Equal(d("1")) {
		t.Fatalf("balance = %s, want 1 after hold", got)
	}

	pending, err := svc.PendingWithdrawals(ctx)
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %v, err = %v", pending, err)
	}

	if err := svc.ApproveWithdrawal(ctx, w.ID, "proof-hash"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if pending, _ = svc.PendingWithdrawals(ctx); len(pending) != 0 {
		t.Fatalf("approved request still pending: %v", pending)
	}
}

func TestRequestWithdrawalGuards(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	fundUser(t, svc, repo, "nowallet", "", "3")
	if _, err := svc.RequestWithdrawal(ctx, "nowallet", d("1")); !errors.Is(err, game.ErrWalletNotBound) {
		t.Fatalf("no wallet err = %v", err)
	}

	fundUser(t, svc, repo, "alice", "Wallet111", "1")
	if _, err := svc.RequestWithdrawal(ctx, "alice", d("2")); !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("overdraw err = %v", err)
	}
	if _, err := svc.RequestWithdrawal(ctx, "alice", d("-1")); err == nil {
		t.Fatal("negative amount accepted")
	}
	if _, err := svc.RequestWithdrawal(ctx, "ghost", d("1")); !errors.Is(err, game.ErrUserNotFound) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestApproveWithdrawalRequiresProof(t *testing.T) {
	svc, repo := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	fundUser(t, svc, repo, "alice", "Wallet111", "3")
	w, err := svc.RequestWithdrawal(ctx, "alice", d("2"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := svc.ApproveWithdrawal(ctx, w.ID, ""); err == nil {
		t.Fatal("approve accepted without a proof hash")
	}
	// Still pending; reject refunds the hold.
	if err := svc.RejectWithdrawal(ctx, w.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := userBalance(t, svc, "alice"); !got.Equal(d("3")) {
		t.Fatalf("balance = %s, want refund back to 3", got)
	}
}

func TestWithdrawHouseProfitGuards(t *testing.T) {
	svc, _ := newTestService(t, testConfig(), &fakeFetcher{})
	ctx := context.Background()

	if err := svc.WithdrawHouseProfit(ctx, d("0")); err == nil {
		t.Fatal("zero treasury withdrawal accepted")
	}
	// Fresh round carries no profit yet.
	if _, err := svc.repo.EnsureRound(ctx, d("0"), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("ensure round: %v", err)
	}
	if err := svc.WithdrawHouseProfit(ctx, d("1")); !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("overdraw err = %v", err)
	}
}

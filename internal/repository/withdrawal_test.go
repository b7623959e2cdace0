package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

func newWithdrawal(t *testing.T, r *Repository, uid, amount string) *models.WithdrawalRequest {
	t.Helper()
	w := &models.WithdrawalRequest{
		ID:            uuid.NewString(),
		UserID:        uid,
		UserName:      uid,
		Amount:        d(amount),
		WalletAddress: "Wallet111",
		Status:        models.WithdrawalPending,
	}
	if err := r.CreateWithdrawal(context.Background(), w); err != nil {
		t.Fatalf("create withdrawal: %v", err)
	}
	return w
}

func TestCreateWithdrawalHoldsFunds(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "3")
	w := newWithdrawal(t, r, "alice", "2")

	if got := balanceOf(t, r, "alice"); !got.Equal(d("1")) {
		t.Fatalf("balance = %s, want 1 after hold", got)
	}

	pending, err := r.GetPendingWithdrawals(ctx)
	if err != nil || len(pending) != 1 || pending[0].ID != w.ID {
		t.Fatalf("pending = %v, err = %v", pending, err)
	}
}

func TestCreateWithdrawalInsufficientFunds(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "broke", "1")

	w := &models.WithdrawalRequest{
		ID: uuid.NewString(), UserID: "broke", Amount: d("2"),
		Status: models.WithdrawalPending,
	}
	err := r.CreateWithdrawal(ctx, w)
	if !errors.Is(err, game.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want insufficient funds", err)
	}
	if pending, _ := r.GetPendingWithdrawals(ctx); len(pending) != 0 {
		t.Fatalf("request persisted on failed hold: %v", pending)
	}
}

func TestApproveWithdrawal(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "3")
	w := newWithdrawal(t, r, "alice", "2")

	if err := r.ApproveWithdrawal(ctx, w.ID, "proof-hash"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	got, err := r.GetWithdrawalByID(ctx, w.ID)
	if err != nil || got == nil {
		t.Fatalf("get withdrawal: %v", err)
	}
	if got.Status != models.WithdrawalApproved || got.TxHash != "proof-hash" {
		t.Fatalf("unexpected state: %+v", got)
	}
	// The held funds are gone for good.
	if bal := balanceOf(t, r, "alice"); !bal.Equal(d("1")) {
		t.Fatalf("balance = %s, want 1", bal)
	}

	err = r.ApproveWithdrawal(ctx, w.ID, "proof-hash-2")
	if !errors.Is(err, game.ErrInvalidStateTransition) {
		t.Fatalf("re-approve err = %v, want invalid transition", err)
	}
}

func TestRejectWithdrawalRefundsOnce(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "3")
	w := newWithdrawal(t, r, "alice", "2")

	if err := r.RejectWithdrawal(ctx, w.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if bal := balanceOf(t, r, "alice"); !bal.Equal(d("3")) {
		t.Fatalf("balance = %s, want refund back to 3", bal)
	}

	err := r.RejectWithdrawal(ctx, w.ID)
	if !errors.Is(err, game.ErrInvalidStateTransition) {
		t.Fatalf("re-reject err = %v, want invalid transition", err)
	}
	if bal := balanceOf(t, r, "alice"); !bal.Equal(d("3")) {
		t.Fatalf("double refund: balance = %s", bal)
	}
}

func TestRejectAfterApproveFails(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, r, "alice", "3")
	w := newWithdrawal(t, r, "alice", "2")

	if err := r.ApproveWithdrawal(ctx, w.ID, "proof"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	err := r.RejectWithdrawal(ctx, w.ID)
	if !errors.Is(err, game.ErrInvalidStateTransition) {
		t.Fatalf("reject after approve err = %v, want invalid transition", err)
	}
	if bal := balanceOf(t, r, "alice"); !bal.Equal(d("1")) {
		t.Fatalf("approved funds refunded: balance = %s", bal)
	}
}

func TestRejectUnknownWithdrawal(t *testing.T) {
	r := newTestRepo(t)

	err := r.RejectWithdrawal(context.Background(), uuid.NewString())
	if !errors.Is(err, game.ErrInvalidStateTransition) {
		t.Fatalf("err = %v, want invalid transition", err)
	}
}

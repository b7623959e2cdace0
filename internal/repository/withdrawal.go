package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"gorm.io/gorm"
)

// CreateWithdrawal debits the requested amount and records the PENDING
// request atomically. The pessimistic debit stops a user from requesting
// the same funds twice while an admin processes the first request.
func (r *Repository) CreateWithdrawal(ctx context.Context, withdrawal *models.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, withdrawal.UserID, withdrawal.Amount); err != nil {
			return err
		}
		return tx.Create(withdrawal).Error
	})
}

func (r *Repository) GetWithdrawalByID(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	var withdrawal models.WithdrawalRequest
	err := r.db.WithContext(ctx).First(&withdrawal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal by id %s: %w", id, err)
	}
	return &withdrawal, nil
}

func (r *Repository) GetPendingWithdrawals(ctx context.Context) ([]*models.WithdrawalRequest, error) {
	var withdrawals []*models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", models.WithdrawalPending).
		Order("created_at ASC").
		Find(&withdrawals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending withdrawals: %w", err)
	}
	return withdrawals, nil
}

// ApproveWithdrawal flips PENDING to APPROVED and records the external
// transfer proof. Funds moved off-chain already; the original debit is
// final. Acting on an already-terminal request fails, never no-ops.
func (r *Repository) ApproveWithdrawal(ctx context.Context, id, txHash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, models.WithdrawalPending).
		Updates(map[string]interface{}{
			"status":  models.WithdrawalApproved,
			"tx_hash": txHash,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrInvalidStateTransition
	}
	return nil
}

// RejectWithdrawal flips PENDING to REJECTED and refunds the held amount.
// The conditional flip and the refund share one transaction so a double
// reject can never refund twice.
func (r *Repository) RejectWithdrawal(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var withdrawal models.WithdrawalRequest
		if err := tx.First(&withdrawal, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return game.ErrInvalidStateTransition
			}
			return err
		}

		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", id, models.WithdrawalPending).
			Update("status", models.WithdrawalRejected)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return game.ErrInvalidStateTransition
		}

		return creditBalance(tx, withdrawal.UserID, withdrawal.Amount)
	})
}

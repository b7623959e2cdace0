package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignatureClaimed reports whether a deposit claim already consumed the
// signature. Checked before any chain call to save RPC quota.
func (r *Repository) SignatureClaimed(ctx context.Context, signature string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DepositClaim{}).
		Where("signature = ? AND type = ?", signature, models.ClaimDeposit).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClaimDeposit consumes the signature and credits the claimant in one
// transaction. The insert races on the signature primary key: the loser
// sees zero rows affected and no credit is applied.
func (r *Repository) ClaimDeposit(ctx context.Context, uid, signature string, amount decimal.Decimal) error {
	claim := &models.DepositClaim{
		Signature: signature,
		UserID:    uid,
		Amount:    amount,
		Type:      models.ClaimDeposit,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(claim)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return game.ErrSignatureAlreadyClaimed
		}
		return creditBalance(tx, uid, amount)
	})
}

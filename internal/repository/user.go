package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) GetUser(ctx context.Context, uid string) (*models.UserAccount, error) {
	var user models.UserAccount
	err := r.db.WithContext(ctx).First(&user, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *models.UserAccount) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) BindWallet(ctx context.Context, uid, walletAddress string) error {
	res := r.db.WithContext(ctx).
		Model(&models.UserAccount{}).
		Where("uid = ?", uid).
		Update("wallet_address", walletAddress)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrUserNotFound
	}
	return nil
}

func (r *Repository) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	res := r.db.WithContext(ctx).
		Model(&models.UserAccount{}).
		Where("uid = ?", uid).
		Update("display_name", displayName)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrUserNotFound
	}
	return nil
}

// CreditBalance applies an atomic increment. Never read-modify-write:
// concurrent settlement and deposit credits must not lose updates.
func (r *Repository) CreditBalance(ctx context.Context, uid string, amount decimal.Decimal) error {
	return creditBalance(r.db.WithContext(ctx), uid, amount)
}

func creditBalance(tx *gorm.DB, uid string, amount decimal.Decimal) error {
	res := tx.Model(&models.UserAccount{}).
		Where("uid = ?", uid).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrUserNotFound
	}
	return nil
}

// debitBalance only lands when the balance covers the amount, so a balance
// can never go negative regardless of concurrent debits.
func debitBalance(tx *gorm.DB, uid string, amount decimal.Decimal) error {
	res := tx.Model(&models.UserAccount{}).
		Where("uid = ? AND balance >= ?", uid, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrInsufficientFunds
	}
	return nil
}

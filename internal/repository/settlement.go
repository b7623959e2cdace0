package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RedeemTicket creates the settlement ticket for (roundID, uid) and
// credits the payout in the same transaction. The ticket's composite key
// makes crediting idempotent: any number of agents can attempt the same
// round and each participant is paid exactly once. Returns whether this
// call was the one that paid.
func (r *Repository) RedeemTicket(ctx context.Context, roundID int64, uid string, amount decimal.Decimal) (bool, error) {
	ticket := &models.SettlementTicket{
		RoundID:   roundID,
		UserID:    uid,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	paid := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ticket)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another agent settled this participant already.
			return nil
		}
		if err := creditBalance(tx, uid, amount); err != nil {
			return err
		}
		paid = true
		return nil
	})
	return paid, err
}

// TicketsForRound exists for operational inspection of a settled round.
func (r *Repository) TicketsForRound(ctx context.Context, roundID int64) ([]models.SettlementTicket, error) {
	var tickets []models.SettlementTicket
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

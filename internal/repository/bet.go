package repository

import (
	"context"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"gorm.io/gorm"
)

// AppendBet applies the whole wager as one atomic unit: debit the bettor,
// grow the side pool and house profit on the round record, and persist the
// bet — or nothing at all. The round condition re-checks status and
// roundID so a wager can never leak into a round that closed (or rolled
// over) between the caller's read and this write.
func (r *Repository) AppendBet(ctx context.Context, observed *models.Round, bet *models.Bet) error {
	tax := bet.OriginalAmount.Sub(bet.PoolAmount)

	poolColumn := "green_pool"
	if bet.Side == models.SideRed {
		poolColumn = "red_pool"
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, bet.PlayerID, bet.OriginalAmount); err != nil {
			return err
		}

		res := tx.Model(&models.Round{}).
			Where("id = ? AND status = ? AND round_id = ?", roundRecordID, models.StatusPlaying, observed.RoundID).
			Updates(map[string]interface{}{
				poolColumn:     gorm.Expr(poolColumn+" + ?", bet.PoolAmount),
				"house_profit": gorm.Expr("house_profit + ?", tax),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return game.ErrRoundNotOpen
		}

		return tx.Create(bet).Error
	})
}

// BetsForRound reads only bets scoped to the given roundID; bets must
// never cross round boundaries.
func (r *Repository) BetsForRound(ctx context.Context, roundID int64) ([]models.Bet, error) {
	var bets []models.Bet
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("created_at ASC").
		Find(&bets).Error
	if err != nil {
		return nil, err
	}
	return bets, nil
}

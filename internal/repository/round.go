package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"gorm.io/gorm"
)

// roundRecordID: there is exactly one authoritative round record; every
// transition overwrites it in place.
const roundRecordID = 1

func (r *Repository) GetRound(ctx context.Context) (*models.Round, error) {
	var round models.Round
	err := r.db.WithContext(ctx).First(&round, "id = ?", roundRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// EnsureRound seeds the singleton round record if it does not exist yet.
// Concurrent agents may race here; the primary key makes it first-writer-wins.
func (r *Repository) EnsureRound(ctx context.Context, jackpotSeed decimal.Decimal, endTime time.Time) (*models.Round, error) {
	existing, err := r.GetRound(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	round := &models.Round{
		ID:           roundRecordID,
		GameID:       1,
		RoundID:      0,
		Status:       models.StatusWaiting,
		RoundEndTime: endTime,
		Jackpot:      jackpotSeed,
	}
	if err := r.db.WithContext(ctx).Create(round).Error; err != nil {
		// Another agent created it first.
		if existing, getErr := r.GetRound(ctx); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return round, nil
}

// transition performs the optimistic compare-and-swap write: the update
// only lands if the record still carries the status and roundID the
// calling agent observed. Zero rows affected means another agent advanced
// the round first.
func (r *Repository) transition(ctx context.Context, observed *models.Round, from models.RoundStatus, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Round{}).
		Where("id = ? AND status = ? AND round_id = ?", roundRecordID, from, observed.RoundID).
		Updates(fields)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrConcurrentUpdateConflict
	}
	return nil
}

func (r *Repository) TransitionToPlaying(ctx context.Context, observed *models.Round, endTime time.Time) error {
	return r.transition(ctx, observed, models.StatusWaiting, map[string]interface{}{
		"status":         models.StatusPlaying,
		"round_id":       gorm.Expr("round_id + 1"),
		"round_end_time": endTime,
		"green_pool":     decimal.Zero,
		"red_pool":       decimal.Zero,
	})
}

// TransitionToResult additionally guards on the observed pools: the
// winner was derived from them, so a bet committing after the caller's
// read invalidates the decision. The losing agent re-reads and
// re-decides on its next tick.
func (r *Repository) TransitionToResult(ctx context.Context, observed *models.Round, winner models.Side, endTime time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Round{}).
		Where("id = ? AND status = ? AND round_id = ? AND green_pool = ? AND red_pool = ?",
			roundRecordID, models.StatusPlaying, observed.RoundID, observed.GreenPool, observed.RedPool).
		Updates(map[string]interface{}{
			"status":         models.StatusResult,
			"last_winner":    winner,
			"round_end_time": endTime,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrConcurrentUpdateConflict
	}
	return nil
}

func (r *Repository) TransitionToWaiting(ctx context.Context, observed *models.Round, nextJackpot decimal.Decimal, jackpotWon bool, endTime time.Time) error {
	fields := map[string]interface{}{
		"status":         models.StatusWaiting,
		"jackpot":        nextJackpot,
		"round_end_time": endTime,
	}
	if jackpotWon {
		fields["game_id"] = gorm.Expr("game_id + 1")
	}
	return r.transition(ctx, observed, models.StatusResult, fields)
}

// WithdrawHouseProfit decrements the running house counter; the condition
// refuses to take out more than was accumulated.
func (r *Repository) WithdrawHouseProfit(ctx context.Context, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.Round{}).
		Where("id = ? AND house_profit >= ?", roundRecordID, amount).
		Update("house_profit", gorm.Expr("house_profit - ?", amount))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return game.ErrInsufficientFunds
	}
	return nil
}

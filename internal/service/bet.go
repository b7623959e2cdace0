package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

// PlaceBet submits a wager for the current round. All validation happens
// before any mutation; the repository applies the bet, the pool growth,
// the tax and the balance debit as a single atomic unit.
func (s *Service) PlaceBet(ctx context.Context, playerID, playerName string, simulated bool, side models.Side, amount decimal.Decimal) (*models.Bet, error) {
	if side != models.SideGreen && side != models.SideRed {
		return nil, fmt.Errorf("invalid bet side %q", side)
	}
	if amount.LessThan(s.minBet) || !amount.IsPositive() {
		return nil, game.ErrBetTooSmall
	}
	if amount.GreaterThan(s.maxBet) {
		return nil, game.ErrBetLimitExceeded
	}

	round, err := s.repo.GetRound(ctx)
	if err != nil {
		return nil, err
	}
	if round == nil || round.Status != models.StatusPlaying {
		return nil, game.ErrRoundNotOpen
	}

	user, err := s.repo.GetUser(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, game.ErrUserNotFound
	}
	if user.Balance.LessThan(amount) {
		return nil, game.ErrInsufficientFunds
	}

	now := time.Now()
	taxRate := s.tax.Rate(round.TimeLeft(now))
	poolAmount := amount.Mul(decimal.NewFromFloat(1 - taxRate)).RoundDown(9)

	bet := &models.Bet{
		ID:             uuid.NewString(),
		PlayerID:       playerID,
		PlayerName:     playerName,
		Simulated:      simulated,
		Side:           side,
		OriginalAmount: amount,
		PoolAmount:     poolAmount,
		RoundID:        round.RoundID,
		CreatedAt:      now,
	}

	if err := s.repo.AppendBet(ctx, round, bet); err != nil {
		return nil, err
	}

	if amount.GreaterThanOrEqual(decimal.NewFromFloat(s.config.WhaleThreshold)) {
		s.logger.Infof("🐋 WHALE ALERT: %s bet %s on %s (round %d)", playerName, amount, side, round.RoundID)
	} else {
		s.logger.Debugf("bet: %s %s on %s, pool +%s (round %d)", playerName, amount, side, poolAmount, round.RoundID)
	}

	return bet, nil
}

// IsWhaleBet reports whether the wager crosses the alert threshold.
func (s *Service) IsWhaleBet(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(decimal.NewFromFloat(s.config.WhaleThreshold))
}

package service

import (
	"context"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

// SettleRound runs the settlement pass over a round frozen in RESULT:
// compute the pure outcome from the snapshot, then redeem one settlement
// ticket per winning participant. Tickets make the pass idempotent and
// recoverable — any agent may run it, repeatedly, and each participant is
// credited exactly once system-wide.
func (s *Service) SettleRound(ctx context.Context, round *models.Round) (game.Outcome, error) {
	if round.Status != models.StatusResult || round.LastWinner == nil {
		return game.Outcome{}, game.ErrInvalidStateTransition
	}

	bets, err := s.repo.BetsForRound(ctx, round.RoundID)
	if err != nil {
		return game.Outcome{}, err
	}

	snap := game.Snapshot{
		RoundID:   round.RoundID,
		Winner:    *round.LastWinner,
		GreenPool: round.GreenPool,
		RedPool:   round.RedPool,
		Jackpot:   round.Jackpot,
	}
	outcome := game.Settle(snap, bets, s.settle)

	for uid, payout := range outcome.Payouts {
		if !payout.IsPositive() {
			continue
		}
		paid, err := s.repo.RedeemTicket(ctx, round.RoundID, uid, payout)
		if err != nil {
			return outcome, err
		}
		if paid {
			s.logger.Infof("settled round %d: %s credited %s", round.RoundID, uid, payout)
		}
	}

	return outcome, nil
}

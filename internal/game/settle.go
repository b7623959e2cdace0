package game

import (
	"github.com/shopspring/decimal"

	"github.com/solarena/rlgl/internal/models"
)

// payoutScale is the precision payout shares are truncated to (lamports).
// Rounding down keeps the summed payouts within the funded pool.
const payoutScale = 9

// Snapshot is the frozen pool state of a round in RESULT.
type Snapshot struct {
	RoundID   int64
	Winner    models.Side
	GreenPool decimal.Decimal
	RedPool   decimal.Decimal
	Jackpot   decimal.Decimal
}

// Outcome is the result of settling one round.
type Outcome struct {
	// Payouts maps participant UID to the total amount to credit.
	Payouts map[string]decimal.Decimal
	// NextJackpot carries into the next WAITING phase.
	NextJackpot decimal.Decimal
	// JackpotWon reports a contested RED win: the jackpot was paid out
	// and the game counter advances.
	JackpotWon bool
	// Uncontested reports the refund-only RED settlement.
	Uncontested bool
}

// SettleParams tunes the uncontested-round detection and the value the
// jackpot is reseeded with after being won.
type SettleParams struct {
	UncontestedEpsilon decimal.Decimal
	JackpotSeed        decimal.Decimal
}

// DecideWinner picks the side with the larger pool; equal pools (including
// both empty) are a draw.
func DecideWinner(greenPool, redPool decimal.Decimal) models.Side {
	switch {
	case greenPool.GreaterThan(redPool):
		return models.SideGreen
	case redPool.GreaterThan(greenPool):
		return models.SideRed
	default:
		return models.SideDraw
	}
}

// Settle computes per-participant payouts from a frozen snapshot and the
// full bet list of that round. It is a pure function: no I/O, no mutation;
// the caller applies the credits.
//
// GREEN win: half of the red pool is distributed pro-rata to green
// bettors on top of their stakes, the other half feeds the jackpot.
// RED win: red bettors split the green pool and the jackpot pro-rata,
// unless the green pool is (near) zero — then the round is uncontested
// and red bettors only get their original wagers back, keeping the
// jackpot out of reach of someone betting into an empty pool.
// DRAW: everyone is refunded their original wager.
func Settle(snap Snapshot, bets []models.Bet, params SettleParams) Outcome {
	out := Outcome{
		Payouts:     make(map[string]decimal.Decimal),
		NextJackpot: snap.Jackpot,
	}

	switch snap.Winner {
	case models.SideGreen:
		rewardPool := snap.RedPool.Div(decimal.NewFromInt(2)).RoundDown(payoutScale)
		toJackpot := snap.RedPool.Sub(rewardPool)
		out.NextJackpot = snap.Jackpot.Add(toJackpot)

		for _, bet := range bets {
			if bet.Side != models.SideGreen {
				continue
			}
			profit := proRata(bet.PoolAmount, snap.GreenPool, rewardPool)
			credit(out.Payouts, bet.PlayerID, bet.PoolAmount.Add(profit))
		}

	case models.SideRed:
		if snap.GreenPool.LessThan(params.UncontestedEpsilon) {
			// Nobody to win from: full refunds, jackpot untouched.
			out.Uncontested = true
			for _, bet := range bets {
				if bet.Side != models.SideRed {
					continue
				}
				credit(out.Payouts, bet.PlayerID, bet.OriginalAmount)
			}
			return out
		}

		rewardPool := snap.GreenPool
		for _, bet := range bets {
			if bet.Side != models.SideRed {
				continue
			}
			profit := proRata(bet.PoolAmount, snap.RedPool, rewardPool)
			jackpotShare := proRata(bet.PoolAmount, snap.RedPool, snap.Jackpot)
			credit(out.Payouts, bet.PlayerID, bet.PoolAmount.Add(profit).Add(jackpotShare))
		}
		out.NextJackpot = params.JackpotSeed
		out.JackpotWon = true

	default: // DRAW
		for _, bet := range bets {
			credit(out.Payouts, bet.PlayerID, bet.OriginalAmount)
		}
	}

	return out
}

// proRata is share/total of reward, truncated to payout precision. Callers
// guarantee total > 0: the zero-pool branches are handled before division.
func proRata(share, total, reward decimal.Decimal) decimal.Decimal {
	return share.Mul(reward).Div(total).RoundDown(payoutScale)
}

func credit(payouts map[string]decimal.Decimal, uid string, amount decimal.Decimal) {
	payouts[uid] = payouts[uid].Add(amount)
}

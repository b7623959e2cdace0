package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"github.com/solarena/rlgl/utils"
)

// Coordinator drives the replicated round state machine. Every agent runs
// one; transitions are time-triggered off each agent's own clock and
// guarded by the conditional round write, so however many agents race a
// boundary, exactly one write lands. Losing a race is not an error — the
// agent simply observes the new state on its next tick.
type Coordinator struct {
	svc      *Service
	interval time.Duration
	logger   *utils.Logger
}

func NewCoordinator(svc *Service, interval time.Duration, logger *utils.Logger) *Coordinator {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Coordinator{svc: svc, interval: interval, logger: logger}
}

func (c *Coordinator) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Infof("round coordinator started (tick %s)", c.interval)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("round coordinator stopped")
			return
		case <-ticker.C:
			if err := c.tick(ctx); err != nil {
				c.logger.Errorf("coordinator tick: %v", err)
			}
		}
	}
}

func (c *Coordinator) tick(ctx context.Context) error {
	round, err := c.svc.repo.GetRound(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if round == nil {
		seed := decimal.NewFromFloat(c.svc.config.JackpotSeed)
		_, err := c.svc.repo.EnsureRound(ctx, seed, now.Add(c.svc.config.WaitingDuration()))
		return err
	}

	switch round.Status {
	case models.StatusWaiting:
		if round.TimeLeft(now) > 0 {
			return nil
		}
		return c.attempt("WAITING→PLAYING", c.svc.repo.TransitionToPlaying(ctx, round, now.Add(c.svc.config.RoundDuration())))

	case models.StatusPlaying:
		if round.TimeLeft(now) > 0 {
			return nil
		}
		winner := game.DecideWinner(round.GreenPool, round.RedPool)
		return c.attempt("PLAYING→RESULT", c.svc.repo.TransitionToResult(ctx, round, winner, now.Add(c.svc.config.ResultDuration())))

	case models.StatusResult:
		// Settlement runs on every agent observing RESULT; the tickets
		// keep it exactly-once per participant. It must complete before
		// this agent tries to advance, because the next transition
		// carries the jackpot the settlement computed.
		outcome, err := c.svc.SettleRound(ctx, round)
		if err != nil {
			return err
		}
		if round.TimeLeft(now) > 0 {
			return nil
		}
		return c.attempt("RESULT→WAITING", c.svc.repo.TransitionToWaiting(ctx, round, outcome.NextJackpot, outcome.JackpotWon, now.Add(c.svc.config.WaitingDuration())))
	}

	return nil
}

// attempt swallows lost races: another agent advanced the round first and
// its write stands.
func (c *Coordinator) attempt(transition string, err error) error {
	if errors.Is(err, game.ErrConcurrentUpdateConflict) {
		c.logger.Debugf("%s: lost transition race, deferring to winner", transition)
		return nil
	}
	if err != nil {
		return err
	}
	c.logger.Infof("round transition %s applied", transition)
	return nil
}

// Package sim provides simulated participants: example callers of the
// betting API that keep rounds lively on quiet tables. They go through
// the same PlaceBet entry point as humans and get no special treatment.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"github.com/solarena/rlgl/internal/service"
	"github.com/solarena/rlgl/internal/watch"
	"github.com/solarena/rlgl/utils"
)

type Kind string

const (
	KindHuman     Kind = "HUMAN"
	KindSimulated Kind = "SIMULATED"
)

type Behavior string

const (
	// BehaviorNormie bets small, and less often as the tax climbs.
	BehaviorNormie Behavior = "NORMIE"
	// BehaviorWhale rarely bets, but big.
	BehaviorWhale Behavior = "WHALE"
	// BehaviorSniper waits for the late window and bets a chunk of its
	// bankroll.
	BehaviorSniper Behavior = "SNIPER"
)

// Participant is a capability-tagged identity: humans come through the
// API, simulated ones carry behavior parameters.
type Participant struct {
	Kind     Kind
	UID      string
	Name     string
	Behavior Behavior
}

// Funder seeds simulated bankrolls; real users fund through deposits.
type Funder interface {
	CreditBalance(ctx context.Context, uid string, amount decimal.Decimal) error
}

var namePrefixes = []string{
	"SolDegen", "PhantomUser", "BonkLover", "Soly", "Anatoly", "WhaleWatch",
	"PaperHands", "DiamondPaws", "JupSpace", "Raydium", "Orca", "Drift",
	"Margin", "Liquidated", "WAGMI", "Anon", "Crypto", "Chain", "Block", "Hash",
}

type Bettor struct {
	participant Participant
	svc         *service.Service
	hub         *watch.Hub
	funder      Funder
	rng         *rand.Rand
	logger      *utils.Logger
}

// NewBettor rolls a random simulated participant. Roughly one in ten is a
// whale, one in six a sniper, the rest normies.
func NewBettor(index int, svc *service.Service, hub *watch.Hub, funder Funder, logger *utils.Logger) *Bettor {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(index)))

	behavior := BehaviorNormie
	switch roll := rng.Float64(); {
	case roll > 0.90:
		behavior = BehaviorWhale
	case roll > 0.75:
		behavior = BehaviorSniper
	}

	name := fmt.Sprintf("%s_%d", namePrefixes[rng.Intn(len(namePrefixes))], 10+rng.Intn(90))
	return &Bettor{
		participant: Participant{
			Kind:     KindSimulated,
			UID:      fmt.Sprintf("sim-%d", index),
			Name:     name,
			Behavior: behavior,
		},
		svc:    svc,
		hub:    hub,
		funder: funder,
		rng:    rng,
		logger: logger,
	}
}

// Run funds the account and reacts to round updates until ctx ends.
func (b *Bettor) Run(ctx context.Context) {
	if _, err := b.svc.GetOrCreateUser(ctx, b.participant.UID, b.participant.Name); err != nil {
		b.logger.Errorf("sim %s: create account: %v", b.participant.Name, err)
		return
	}
	if err := b.funder.CreditBalance(ctx, b.participant.UID, decimal.NewFromFloat(b.bankroll())); err != nil {
		b.logger.Errorf("sim %s: fund account: %v", b.participant.Name, err)
		return
	}

	updates := b.hub.Subscribe(ctx)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var round *models.Round
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-updates:
			if !ok {
				return
			}
			round = &r
		case <-ticker.C:
			if round == nil || round.Status != models.StatusPlaying {
				continue
			}
			b.maybeBet(ctx, round)
		}
	}
}

func (b *Bettor) maybeBet(ctx context.Context, round *models.Round) {
	timeLeft := round.TimeLeft(time.Now())
	taxRate := b.svc.TaxParams().Rate(timeLeft)

	var amount float64
	switch b.participant.Behavior {
	case BehaviorWhale:
		if b.rng.Float64() >= 0.01 {
			return
		}
		amount = 1.0 + b.rng.Float64()*5.0
	case BehaviorSniper:
		if timeLeft > 15*time.Second || timeLeft == 0 || b.rng.Float64() >= 0.3 {
			return
		}
		amount = 0.3 + b.rng.Float64()*0.7
	default:
		if b.rng.Float64() >= 0.05*(1-taxRate) {
			return
		}
		amount = 0.1 + b.rng.Float64()*0.2
	}

	side := models.SideGreen
	if b.rng.Float64() > 0.5 {
		side = models.SideRed
	}

	_, err := b.svc.PlaceBet(ctx, b.participant.UID, b.participant.Name, true, side, clampBet(amount, b.svc.MaxBet()))
	if err != nil && !errors.Is(err, game.ErrInsufficientFunds) && !errors.Is(err, game.ErrRoundNotOpen) {
		b.logger.Debugf("sim %s: bet failed: %v", b.participant.Name, err)
	}
}

func (b *Bettor) bankroll() float64 {
	switch b.participant.Behavior {
	case BehaviorWhale:
		return 50 + b.rng.Float64()*100
	case BehaviorSniper:
		return 10 + b.rng.Float64()*40
	default:
		return 2 + b.rng.Float64()*8
	}
}

func clampBet(amount float64, max decimal.Decimal) decimal.Decimal {
	bet := decimal.NewFromFloat(amount).RoundDown(4)
	if bet.GreaterThan(max) {
		return max
	}
	return bet
}

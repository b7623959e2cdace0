package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/config"
	"github.com/solarena/rlgl/internal/chain"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
	"github.com/solarena/rlgl/utils"
)

type Service struct {
	repo   Repository
	chain  chain.TxFetcher
	config *config.Config
	tax    game.TaxParams
	settle game.SettleParams
	minBet decimal.Decimal
	maxBet decimal.Decimal
	logger *utils.Logger
}

type Repository interface {
	GetUser(ctx context.Context, uid string) (*models.UserAccount, error)
	CreateUser(ctx context.Context, user *models.UserAccount) error
	BindWallet(ctx context.Context, uid, walletAddress string) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	CreditBalance(ctx context.Context, uid string, amount decimal.Decimal) error

	GetRound(ctx context.Context) (*models.Round, error)
	EnsureRound(ctx context.Context, jackpotSeed decimal.Decimal, endTime time.Time) (*models.Round, error)
	TransitionToPlaying(ctx context.Context, observed *models.Round, endTime time.Time) error
	TransitionToResult(ctx context.Context, observed *models.Round, winner models.Side, endTime time.Time) error
	TransitionToWaiting(ctx context.Context, observed *models.Round, nextJackpot decimal.Decimal, jackpotWon bool, endTime time.Time) error
	WithdrawHouseProfit(ctx context.Context, amount decimal.Decimal) error

	AppendBet(ctx context.Context, observed *models.Round, bet *models.Bet) error
	BetsForRound(ctx context.Context, roundID int64) ([]models.Bet, error)

	SignatureClaimed(ctx context.Context, signature string) (bool, error)
	ClaimDeposit(ctx context.Context, uid, signature string, amount decimal.Decimal) error

	RedeemTicket(ctx context.Context, roundID int64, uid string, amount decimal.Decimal) (bool, error)

	CreateWithdrawal(ctx context.Context, withdrawal *models.WithdrawalRequest) error
	GetWithdrawalByID(ctx context.Context, id string) (*models.WithdrawalRequest, error)
	GetPendingWithdrawals(ctx context.Context) ([]*models.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id, txHash string) error
	RejectWithdrawal(ctx context.Context, id string) error
}

func NewService(repo Repository, fetcher chain.TxFetcher, cfg *config.Config, logger *utils.Logger) *Service {
	return &Service{
		repo:   repo,
		chain:  fetcher,
		config: cfg,
		tax: game.TaxParams{
			LateWindow: cfg.LateWindow(),
			BaseTax:    cfg.BaseTax,
			MaxTax:     cfg.MaxTax,
		},
		settle: game.SettleParams{
			UncontestedEpsilon: decimal.NewFromFloat(cfg.UncontestedEpsilon),
			JackpotSeed:        decimal.NewFromFloat(cfg.JackpotSeed),
		},
		minBet: decimal.NewFromFloat(cfg.MinBet),
		maxBet: decimal.NewFromFloat(cfg.MaxBet),
		logger: logger,
	}
}

func (s *Service) TaxParams() game.TaxParams {
	return s.tax
}

func (s *Service) MaxBet() decimal.Decimal {
	return s.maxBet
}

func (s *Service) GetRound(ctx context.Context) (*models.Round, error) {
	return s.repo.GetRound(ctx)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

// RequestWithdrawal debits the balance immediately and parks the funds in
// a PENDING request until an admin settles it externally.
func (s *Service) RequestWithdrawal(ctx context.Context, uid string, amount decimal.Decimal) (*models.WithdrawalRequest, error) {
	if !amount.IsPositive() {
		return nil, errors.New("withdrawal amount must be positive")
	}

	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, game.ErrUserNotFound
	}
	if user.WalletAddress == "" {
		return nil, game.ErrWalletNotBound
	}
	if user.Balance.LessThan(amount) {
		return nil, game.ErrInsufficientFunds
	}

	withdrawal := &models.WithdrawalRequest{
		ID:            uuid.NewString(),
		UserID:        uid,
		UserName:      user.DisplayName,
		Amount:        amount,
		WalletAddress: user.WalletAddress,
		Status:        models.WithdrawalPending,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.CreateWithdrawal(ctx, withdrawal); err != nil {
		return nil, err
	}

	s.logger.Infof("withdrawal requested: %s for %s to %s", withdrawal.ID, amount, withdrawal.WalletAddress)
	return withdrawal, nil
}

// ApproveWithdrawal marks the request fulfilled. The external transfer
// already happened by hand; the proof hash is required and no funds move.
func (s *Service) ApproveWithdrawal(ctx context.Context, id, proofTxHash string) error {
	if proofTxHash == "" {
		return errors.New("proof transaction hash is required to approve")
	}
	if err := s.repo.ApproveWithdrawal(ctx, id, proofTxHash); err != nil {
		return err
	}
	s.logger.Infof("withdrawal %s approved (tx %s)", id, proofTxHash)
	return nil
}

// RejectWithdrawal refunds the held amount back to the balance.
func (s *Service) RejectWithdrawal(ctx context.Context, id string) error {
	if err := s.repo.RejectWithdrawal(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("withdrawal %s rejected, funds refunded", id)
	return nil
}

func (s *Service) PendingWithdrawals(ctx context.Context) ([]*models.WithdrawalRequest, error) {
	return s.repo.GetPendingWithdrawals(ctx)
}

// WithdrawHouseProfit decrements the running house counter by the amount
// the admin took out. External reconciliation is the admin's business.
func (s *Service) WithdrawHouseProfit(ctx context.Context, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("treasury withdrawal amount must be positive")
	}
	if err := s.repo.WithdrawHouseProfit(ctx, amount); err != nil {
		return err
	}
	s.logger.Infof("house profit withdrawn: %s", amount)
	return nil
}

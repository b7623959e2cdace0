package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/utils"
)

// lamportsPerUnit: chain balances are reported in lamports.
const lamportExponent = -9

// VerifyDeposit authenticates an externally claimed transfer and credits
// the claimant. Order matters: the cheap database checks run before any
// chain call, and no credit is ever applied on a rejection path.
func (s *Service) VerifyDeposit(ctx context.Context, uid, rawSignature string) (decimal.Decimal, error) {
	signature := utils.NormalizeSignature(rawSignature)
	if signature == "" {
		return decimal.Zero, game.ErrTransactionNotFound
	}

	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return decimal.Zero, err
	}
	if user == nil {
		return decimal.Zero, game.ErrUserNotFound
	}
	if user.WalletAddress == "" {
		return decimal.Zero, game.ErrWalletNotBound
	}

	claimed, err := s.repo.SignatureClaimed(ctx, signature)
	if err != nil {
		return decimal.Zero, err
	}
	if claimed {
		return decimal.Zero, game.ErrSignatureAlreadyClaimed
	}

	info, err := s.chain.GetTransaction(ctx, signature)
	if err != nil {
		return decimal.Zero, err
	}

	if info.Failed {
		return decimal.Zero, game.ErrOnChainFailure
	}

	// Anti-snipe: only the wallet bound to this account may claim its
	// transfers, otherwise anyone pasting a public signature gets paid.
	if info.Signer == "" || info.Signer != user.WalletAddress {
		s.logger.Warnf("signer mismatch for %s: expected %s, got %s",
			uid, utils.ShortenAddress(user.WalletAddress), utils.ShortenAddress(info.Signer))
		return decimal.Zero, game.ErrSignerMismatch
	}

	houseIndex := info.AccountIndex(s.config.HouseWalletAddress)
	if houseIndex == -1 {
		return decimal.Zero, game.ErrNoTransferDetected
	}
	delta := info.BalanceDelta(houseIndex)
	if delta <= 0 {
		return decimal.Zero, game.ErrNoTransferDetected
	}

	amount := decimal.New(delta, lamportExponent)

	// The claim insert and the credit commit together; a racing duplicate
	// claim loses on the signature key and credits nothing.
	if err := s.repo.ClaimDeposit(ctx, uid, signature, amount); err != nil {
		return decimal.Zero, err
	}

	s.logger.Infof("deposit verified: %s credited %s (sig %s)", uid, amount, utils.ShortenAddress(signature))
	return amount, nil
}

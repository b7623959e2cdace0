package service

import (
	"context"

	"github.com/solarena/rlgl/internal/game"
	"github.com/solarena/rlgl/internal/models"
)

// GetOrCreateUser resolves a participant account, creating it with a zero
// balance on first sight. Balances start empty; funds arrive via deposits.
func (s *Service) GetOrCreateUser(ctx context.Context, uid, displayName string) (*models.UserAccount, error) {
	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	if displayName == "" {
		displayName = "Player"
	}
	user = &models.UserAccount{
		UID:         uid,
		DisplayName: displayName,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Lost a creation race with another agent; the row exists now.
		if existing, getErr := s.repo.GetUser(ctx, uid); getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, uid string) (*models.UserAccount, error) {
	user, err := s.repo.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, game.ErrUserNotFound
	}
	return user, nil
}

// BindWallet anchors the deposit/withdrawal anti-fraud wallet address.
func (s *Service) BindWallet(ctx context.Context, uid, walletAddress string) error {
	return s.repo.BindWallet(ctx, uid, walletAddress)
}

func (s *Service) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	return s.repo.UpdateDisplayName(ctx, uid, displayName)
}

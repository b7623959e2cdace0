package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoundStatus string

const (
	StatusWaiting RoundStatus = "WAITING"
	StatusPlaying RoundStatus = "PLAYING"
	StatusResult  RoundStatus = "RESULT"
)

type Side string

const (
	SideGreen Side = "GREEN"
	SideRed   Side = "RED"
	// SideDraw is never a bet side, only an outcome.
	SideDraw Side = "DRAW"
)

// Round is the single authoritative round record. It is created once and
// only ever mutated through the coordinator's conditional transitions.
type Round struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	GameID       int64           `json:"game_id"`
	RoundID      int64           `json:"round_id"`
	Status       RoundStatus     `json:"status"`
	RoundEndTime time.Time       `json:"round_end_time"`
	Jackpot      decimal.Decimal `gorm:"type:decimal(30,9)" json:"jackpot"`
	HouseProfit  decimal.Decimal `gorm:"type:decimal(30,9)" json:"house_profit"`
	GreenPool    decimal.Decimal `gorm:"type:decimal(30,9)" json:"green_pool"`
	RedPool      decimal.Decimal `gorm:"type:decimal(30,9)" json:"red_pool"`
	LastWinner   *Side           `json:"last_winner"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TimeLeft is always derived from the absolute end time so it stays
// correct across clock drift and reconnects.
func (r *Round) TimeLeft(now time.Time) time.Duration {
	left := r.RoundEndTime.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

type Bet struct {
	ID             string          `gorm:"primaryKey" json:"id"`
	PlayerID       string          `gorm:"index:idx_bets_round_player" json:"player_id"`
	PlayerName     string          `json:"player_name"`
	Simulated      bool            `json:"simulated"`
	Side           Side            `json:"side"`
	OriginalAmount decimal.Decimal `gorm:"type:decimal(30,9)" json:"original_amount"`
	PoolAmount     decimal.Decimal `gorm:"type:decimal(30,9)" json:"pool_amount"`
	RoundID        int64           `gorm:"index;index:idx_bets_round_player" json:"round_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

type UserAccount struct {
	UID           string          `gorm:"primaryKey" json:"uid"`
	DisplayName   string          `json:"display_name"`
	Balance       decimal.Decimal `gorm:"type:decimal(30,9)" json:"balance"`
	WalletAddress string          `json:"wallet_address"`
	IsAdmin       bool            `json:"is_admin"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ClaimType string

const ClaimDeposit ClaimType = "DEPOSIT"

// DepositClaim marks an external transaction signature as consumed. The
// primary key on Signature is the double-spend guard.
type DepositClaim struct {
	Signature string          `gorm:"primaryKey" json:"signature"`
	UserID    string          `gorm:"index" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(30,9)" json:"amount"`
	Type      ClaimType       `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

type WithdrawalRequest struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	UserID        string           `gorm:"index" json:"user_id"`
	UserName      string           `json:"user_name"`
	Amount        decimal.Decimal  `gorm:"type:decimal(30,9)" json:"amount"`
	WalletAddress string           `json:"wallet_address"`
	Status        WithdrawalStatus `gorm:"index" json:"status"`
	TxHash        string           `json:"tx_hash"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// SettlementTicket makes payout crediting idempotent: one row per
// (round, participant), inserted in the same transaction as the credit.
// A duplicate insert means another agent already settled that participant.
type SettlementTicket struct {
	RoundID   int64           `gorm:"primaryKey;autoIncrement:false" json:"round_id"`
	UserID    string          `gorm:"primaryKey" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(30,9)" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

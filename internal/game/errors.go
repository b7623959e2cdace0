package game

import "errors"

// Validation errors are detected before any mutation and surfaced to the
// caller. ErrConcurrentUpdateConflict is internal: it is the normal result
// of multi-agent racing and is never shown to a user.
var (
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrRoundNotOpen             = errors.New("round is not open for betting")
	ErrBetLimitExceeded         = errors.New("bet exceeds the allowed limit")
	ErrBetTooSmall              = errors.New("bet is below the minimum")
	ErrWalletNotBound           = errors.New("no wallet address bound to account")
	ErrSignatureAlreadyClaimed  = errors.New("transaction signature already claimed")
	ErrTransactionNotFound      = errors.New("transaction not found on-chain")
	ErrNetworkUnavailable       = errors.New("all chain endpoints unavailable")
	ErrOnChainFailure           = errors.New("transaction failed on-chain")
	ErrSignerMismatch           = errors.New("transaction signer does not match bound wallet")
	ErrNoTransferDetected       = errors.New("no transfer to house wallet detected")
	ErrInvalidStateTransition   = errors.New("invalid state transition")
	ErrConcurrentUpdateConflict = errors.New("concurrent update conflict")
	ErrUserNotFound             = errors.New("user not found")
)

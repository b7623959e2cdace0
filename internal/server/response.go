package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/solarena/rlgl/internal/game"
)

func jsonSuccess(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// reason codes are stable machine-readable strings; callers branch on
// them (e.g. "retry later" for NETWORK_UNAVAILABLE vs "check your hash"
// for TRANSACTION_NOT_FOUND).
var errorReasons = []struct {
	err    error
	status int
	reason string
}{
	{game.ErrInsufficientFunds, fiber.StatusPaymentRequired, "INSUFFICIENT_FUNDS"},
	{game.ErrRoundNotOpen, fiber.StatusConflict, "ROUND_NOT_OPEN"},
	{game.ErrBetLimitExceeded, fiber.StatusBadRequest, "BET_LIMIT_EXCEEDED"},
	{game.ErrBetTooSmall, fiber.StatusBadRequest, "BET_TOO_SMALL"},
	{game.ErrWalletNotBound, fiber.StatusPreconditionFailed, "WALLET_NOT_BOUND"},
	{game.ErrSignatureAlreadyClaimed, fiber.StatusConflict, "SIGNATURE_ALREADY_CLAIMED"},
	{game.ErrTransactionNotFound, fiber.StatusNotFound, "TRANSACTION_NOT_FOUND"},
	{game.ErrNetworkUnavailable, fiber.StatusServiceUnavailable, "NETWORK_UNAVAILABLE"},
	{game.ErrOnChainFailure, fiber.StatusUnprocessableEntity, "ON_CHAIN_FAILURE"},
	{game.ErrSignerMismatch, fiber.StatusForbidden, "SIGNER_MISMATCH"},
	{game.ErrNoTransferDetected, fiber.StatusUnprocessableEntity, "NO_TRANSFER_DETECTED"},
	{game.ErrInvalidStateTransition, fiber.StatusConflict, "INVALID_STATE_TRANSITION"},
	{game.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
}

func jsonError(c *fiber.Ctx, err error) error {
	for _, m := range errorReasons {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(fiber.Map{
				"success": false,
				"reason":  m.reason,
				"message": m.err.Error(),
			})
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"reason":  "BAD_REQUEST",
		"message": err.Error(),
	})
}

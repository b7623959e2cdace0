package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/solarena/rlgl/internal/models"
)

func (s *Server) handleGetRound(c *fiber.Ctx) error {
	round, err := s.svc.GetRound(c.Context())
	if err != nil {
		return jsonError(c, err)
	}
	if round == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"reason":  "ROUND_NOT_INITIALIZED",
			"message": "round record not created yet",
		})
	}

	timeLeft := round.TimeLeft(time.Now())
	return jsonSuccess(c, fiber.Map{
		"round":            round,
		"time_left_ms":     timeLeft.Milliseconds(),
		"current_tax_rate": s.svc.TaxParams().Rate(timeLeft),
	})
}

func (s *Server) handleMe(c *fiber.Ctx) error {
	return jsonSuccess(c, currentUser(c))
}

type bindWalletRequest struct {
	WalletAddress string `json:"wallet_address"`
}

func (s *Server) handleBindWallet(c *fiber.Ctx) error {
	var req bindWalletRequest
	if err := c.BodyParser(&req); err != nil || req.WalletAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "wallet_address is required",
		})
	}
	user := currentUser(c)
	if err := s.svc.BindWallet(c.Context(), user.UID, req.WalletAddress); err != nil {
		return jsonError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"wallet_address": req.WalletAddress})
}

type updateNameRequest struct {
	DisplayName string `json:"display_name"`
}

func (s *Server) handleUpdateName(c *fiber.Ctx) error {
	var req updateNameRequest
	if err := c.BodyParser(&req); err != nil || req.DisplayName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "display_name is required",
		})
	}
	user := currentUser(c)
	if err := s.svc.UpdateDisplayName(c.Context(), user.UID, req.DisplayName); err != nil {
		return jsonError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"display_name": req.DisplayName})
}

type placeBetRequest struct {
	Side   models.Side     `json:"side"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handlePlaceBet(c *fiber.Ctx) error {
	var req placeBetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "invalid bet payload",
		})
	}

	user := currentUser(c)
	bet, err := s.svc.PlaceBet(c.Context(), user.UID, user.DisplayName, false, req.Side, req.Amount)
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"bet":   bet,
		"whale": s.svc.IsWhaleBet(bet.OriginalAmount),
	})
}

type verifyDepositRequest struct {
	Signature string `json:"signature"`
}

func (s *Server) handleVerifyDeposit(c *fiber.Ctx) error {
	var req verifyDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "invalid deposit payload",
		})
	}

	user := currentUser(c)
	amount, err := s.svc.VerifyDeposit(c.Context(), user.UID, req.Signature)
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, fiber.Map{"credited": amount})
}

type withdrawalRequestBody struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleRequestWithdrawal(c *fiber.Ctx) error {
	var req withdrawalRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "invalid withdrawal payload",
		})
	}

	user := currentUser(c)
	withdrawal, err := s.svc.RequestWithdrawal(c.Context(), user.UID, req.Amount)
	if err != nil {
		return jsonError(c, err)
	}

	return jsonSuccess(c, withdrawal)
}

func (s *Server) handlePendingWithdrawals(c *fiber.Ctx) error {
	withdrawals, err := s.svc.PendingWithdrawals(c.Context())
	if err != nil {
		return jsonError(c, err)
	}
	return jsonSuccess(c, withdrawals)
}

type approveRequest struct {
	TxHash string `json:"tx_hash"`
}

func (s *Server) handleApproveWithdrawal(c *fiber.Ctx) error {
	var req approveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "invalid approval payload",
		})
	}

	if err := s.svc.ApproveWithdrawal(c.Context(), c.Params("id"), req.TxHash); err != nil {
		return jsonError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"status": models.WithdrawalApproved})
}

func (s *Server) handleRejectWithdrawal(c *fiber.Ctx) error {
	if err := s.svc.RejectWithdrawal(c.Context(), c.Params("id")); err != nil {
		return jsonError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"status": models.WithdrawalRejected})
}

type treasuryWithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleTreasuryWithdraw(c *fiber.Ctx) error {
	var req treasuryWithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"reason":  "BAD_REQUEST",
			"message": "invalid treasury payload",
		})
	}

	if err := s.svc.WithdrawHouseProfit(c.Context(), req.Amount); err != nil {
		return jsonError(c, err)
	}
	return jsonSuccess(c, fiber.Map{"withdrawn": req.Amount})
}

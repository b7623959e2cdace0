package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/solarena/rlgl/internal/service"
	"github.com/solarena/rlgl/utils"
)

type Server struct {
	app    *fiber.App
	svc    *service.Service
	logger *utils.Logger
}

func NewServer(svc *service.Service, logger *utils.Logger) *Server {
	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		svc:    svc,
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/round", s.handleGetRound)

	authed := s.app.Group("/", s.identityMiddleware)
	authed.Get("/me", s.handleMe)
	authed.Put("/profile/wallet", s.handleBindWallet)
	authed.Put("/profile/name", s.handleUpdateName)
	authed.Post("/bets", s.handlePlaceBet)
	authed.Post("/deposits/verify", s.handleVerifyDeposit)
	authed.Post("/withdrawals", s.handleRequestWithdrawal)

	admin := authed.Group("/admin", s.adminMiddleware)
	admin.Get("/withdrawals", s.handlePendingWithdrawals)
	admin.Post("/withdrawals/:id/approve", s.handleApproveWithdrawal)
	admin.Post("/withdrawals/:id/reject", s.handleRejectWithdrawal)
	admin.Post("/treasury/withdraw", s.handleTreasuryWithdraw)
}

func (s *Server) Listen(addr string) error {
	s.logger.Infof("🚀 API listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App is exposed for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

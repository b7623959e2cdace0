package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solarena/rlgl/config"
	"github.com/solarena/rlgl/db"
	"github.com/solarena/rlgl/internal/chain"
	"github.com/solarena/rlgl/internal/repository"
	"github.com/solarena/rlgl/internal/server"
	"github.com/solarena/rlgl/internal/service"
	"github.com/solarena/rlgl/internal/sim"
	"github.com/solarena/rlgl/internal/watch"
	"github.com/solarena/rlgl/utils"
)

func main() {
	logger := utils.InitLogger()
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logger.Fatal("Failed to load config: ", err)
	}
	logger.SetLevelFromString(cfg.LogLevel)

	database, err := db.ConnectDb(cfg.DB_URL, logger)
	if err != nil {
		logger.Fatal(err)
	}

	if err := db.Migrate(database, true, logger); err != nil {
		logger.Fatal(err)
	}

	repo := repository.NewRepository(database, logger)
	rpc := chain.NewClient(cfg.RPCEndpointList(), cfg.RPCTimeout(), logger)
	svc := service.NewService(repo, rpc, &cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := watch.NewHub(repo, 500*time.Millisecond, logger)
	go hub.Run(ctx)

	coordinator := service.NewCoordinator(svc, 500*time.Millisecond, logger)
	go coordinator.Run(ctx)

	for i := 0; i < cfg.SimBettorCount; i++ {
		go sim.NewBettor(i, svc, hub, repo, logger).Run(ctx)
	}

	api := server.NewServer(svc, logger)
	go func() {
		<-ctx.Done()
		logger.Info("shutting down...")
		_ = api.Shutdown()
	}()

	logger.Infof("agent %q up", cfg.AgentName)
	if err := api.Listen(cfg.ListenAddr); err != nil {
		logger.Fatal(err)
	}
}

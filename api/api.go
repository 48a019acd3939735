// Package api assembles the HTTP surface: the same ordered batch balance
// query the CLI runs, behind key auth, rate limiting and a short TTL cache.
package api

import (
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"lumen/api/database"
	"lumen/api/routes"
	"lumen/api/services"
	"lumen/balance"
	"lumen/config"
)

// Server is a running-ready API instance. Construction connects the backing
// stores; Run blocks serving until shutdown.
type Server struct {
	app  *fiber.App
	db   *database.Database
	port string
	log  *zap.Logger
}

// New connects Mongo and Redis and wires the fiber app. The returned server
// owns the database handles.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	client := balance.NewClient(cfg.RPCURL, rpc.CommitmentType(cfg.Commitment), cfg.RequestTimeout())
	fetcher := balance.NewFetcher(client, cfg.MaxConcurrent, log)
	svc := services.NewBalanceService(fetcher, db.Redis, cfg.CacheTTL(), log)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	h := routes.NewHandler(svc, cfg.Server.MaxWalletsPerCall)
	routes.Register(app, h, db.Mongo, database.Name, cfg.Server.RateLimitPerMinute)

	return &Server{
		app:  app,
		db:   db,
		port: cfg.Server.Port,
		log:  log,
	}, nil
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("api listening", zap.String("port", s.port))
	return s.app.Listen("0.0.0.0:" + s.port)
}

// Shutdown stops the listener and closes the backing stores.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	if closeErr := s.db.Close(); err == nil {
		err = closeErr
	}
	return err
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/veloxbus/fleet-inventory/internal/config"
	"github.com/veloxbus/fleet-inventory/internal/database"
	"github.com/veloxbus/fleet-inventory/internal/handler"
	"github.com/veloxbus/fleet-inventory/internal/logger"
	"github.com/veloxbus/fleet-inventory/internal/middleware"
	"github.com/veloxbus/fleet-inventory/internal/pathopt"
	"github.com/veloxbus/fleet-inventory/internal/queue"
	"github.com/veloxbus/fleet-inventory/internal/repository"
	"github.com/veloxbus/fleet-inventory/internal/router"
	"github.com/veloxbus/fleet-inventory/internal/seatconfig"
	queuepublisher "github.com/veloxbus/fleet-inventory/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(database.Params{
		User:         cfg.DBUser,
		Pass:         cfg.DBPass,
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		Name:         cfg.DBName,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		ConnMaxLife:  time.Duration(cfg.DBConnMaxLifeMin) * time.Minute,
	})
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis backs the response cache and the auth rate limiter.  A nil
	// client disables both; the API still serves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zlog.Warn("redis unavailable, cache and rate limiting disabled")
	}

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	diagrams := repository.NewSeatDiagramRepo(db)
	seats := repository.NewBusSeatRepo(db)
	buses := repository.NewBusRepo(db)
	transporters := repository.NewTransporterRepo(db)
	nodes := repository.NewNodeRepo(db)
	pathways := repository.NewPathwayRepo(db)
	options := repository.NewPathwayOptionRepo(db)

	// Services
	seatConfig := seatconfig.NewService(db, diagrams, seats, zlog,
		func(ctx context.Context, ev queue.DiagramReconciledEvent) error {
			return queuepublisher.PublishDiagramReconciled(ctx, zlog, ev)
		})
	pathOpt := pathopt.NewService(db, pathways, options, zlog)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	invH := handler.NewInventoryHandler(db, diagrams, seats, buses, transporters, nodes, pathways, options, seatConfig, pathOpt, zlog)
	pubH := &handler.PublicHandler{
		Diagrams:     diagrams,
		Seats:        seats,
		Buses:        buses,
		Transporters: transporters,
		Nodes:        nodes,
		Pathways:     pathways,
		Options:      options,
	}

	e := echo.New()
	e.HideBanner = true

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiterMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiterMW)
	router.RegisterPublic(e, pubH, cacheMW)
	router.RegisterInventory(e, invH, cfg.JWTSecret)

	// Background consumer logging every committed reconciliation.
	go func() {
		if err := queue.StartReconcileConsumer(zlog); err != nil {
			zlog.Warn("reconcile consumer stopped", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

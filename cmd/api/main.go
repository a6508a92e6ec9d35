package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/armory-api/internal/application/analytics"
	"github.com/jhoicas/armory-api/internal/application/assignment"
	"github.com/jhoicas/armory-api/internal/application/auth"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/application/usecase"
	"github.com/jhoicas/armory-api/internal/domain/repository"
	"github.com/jhoicas/armory-api/internal/infrastructure/memory"
	"github.com/jhoicas/armory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/armory-api/internal/interfaces/http"
	"github.com/jhoicas/armory-api/migrations"
	"github.com/jhoicas/armory-api/pkg/config"
	"github.com/jhoicas/armory-api/pkg/logger"
	"github.com/jhoicas/armory-api/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("starting application")

	ctx := context.Background()

	var (
		txRunner        ledger.TxRunner
		baseRepo        repository.BaseRepository
		assetRepo       repository.AssetRepository
		stockRepo       repository.StockRepository
		purchaseRepo    repository.PurchaseRepository
		transferRepo    repository.TransferRepository
		expenditureRepo repository.ExpenditureRepository
		assignmentRepo  repository.AssignmentRepository
		userRepo        repository.UserRepository
		analyticsRepo   repository.AnalyticsRepository
	)

	if cfg.App.Store == "memory" {
		log.Warn().Msg("using in-memory store, data will not survive restarts")
		store := memory.NewStore()
		txRunner = store
		baseRepo = store.Bases()
		assetRepo = store.Assets()
		stockRepo = store.Stocks()
		purchaseRepo = store.Purchases()
		transferRepo = store.Transfers()
		expenditureRepo = store.Expenditures()
		assignmentRepo = store.Assignments()
		userRepo = store.Users()
		analyticsRepo = store.Analytics()
	} else {
		if cfg.App.RunMigrations {
			if err := migrator.RunMigrations(cfg.DB.ConnectionString(), migrations.FS); err != nil {
				log.Fatal().Err(err).Msg("apply migrations")
			}
			log.Info().Msg("migrations applied")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to PostgreSQL")
		}
		defer pool.Close()

		txRunner = postgres.NewTxRunner(pool)
		baseRepo = postgres.NewBaseRepository(pool)
		assetRepo = postgres.NewAssetRepository(pool)
		stockRepo = postgres.NewStockRepository(pool)
		purchaseRepo = postgres.NewPurchaseRepository(pool)
		transferRepo = postgres.NewTransferRepository(pool)
		expenditureRepo = postgres.NewExpenditureRepository(pool)
		assignmentRepo = postgres.NewAssignmentRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
	}

	ledgerUC := ledger.New(txRunner, baseRepo, assetRepo)
	assignmentUC := assignment.New(txRunner, assignmentRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	baseUC := usecase.NewBaseUseCase(baseRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo, stockRepo, ledgerUC)
	authUC := auth.New(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Armory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		BaseUC:       baseUC,
		AssetUC:      assetUC,
		LedgerUC:     ledgerUC,
		AssignmentUC: assignmentUC,
		DashboardUC:  dashboardUC,
		Assets:       assetRepo,
		Bases:        baseRepo,
		Purchases:    purchaseRepo,
		Transfers:    transferRepo,
		Expenditures: expenditureRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

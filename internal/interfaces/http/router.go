package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/analytics"
	"github.com/jhoicas/armory-api/internal/application/assignment"
	"github.com/jhoicas/armory-api/internal/application/auth"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/application/usecase"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// RouterDeps are the wired use cases and read repositories the routes
// need.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	BaseUC       *usecase.BaseUseCase
	AssetUC      *usecase.AssetUseCase
	LedgerUC     *ledger.UseCase
	AssignmentUC *assignment.UseCase
	DashboardUC  *analytics.DashboardUseCase

	Assets       repository.AssetRepository
	Bases        repository.BaseRepository
	Purchases    repository.PurchaseRepository
	Transfers    repository.TransferRepository
	Expenditures repository.ExpenditureRepository

	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	bases := protected.Group("/bases")
	baseHandler := NewBaseHandler(deps.BaseUC)
	bases.Post("/", baseHandler.Create)
	bases.Get("/", baseHandler.List)
	bases.Delete("/:id", baseHandler.Delete)

	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Put("/:id", assetHandler.Update)
	assets.Delete("/:id", assetHandler.Delete)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.LedgerUC, deps.Purchases, deps.Assets, deps.Bases)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)

	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.LedgerUC, deps.Transfers, deps.Assets, deps.Bases)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)

	expenditures := protected.Group("/expenditures")
	expenditureHandler := NewExpenditureHandler(deps.LedgerUC, deps.Expenditures, deps.Assets, deps.Bases)
	expenditures.Post("/", expenditureHandler.Create)
	expenditures.Get("/", expenditureHandler.List)

	assignments := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC, deps.Assets)
	assignments.Post("/", assignmentHandler.Create)
	assignments.Get("/", assignmentHandler.List)
	assignments.Put("/:id/expended", assignmentHandler.MarkExpended)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mantenpro/mantenpro-api/internal/application/auth"
	"github.com/mantenpro/mantenpro-api/internal/application/dieselimport"
	"github.com/mantenpro/mantenpro-api/internal/application/report"
	"github.com/mantenpro/mantenpro-api/internal/application/usecase"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PlantUC     *usecase.PlantUseCase
	WarehouseUC *usecase.WarehouseUseCase
	AssetUC     *usecase.AssetUseCase
	ImportUC    *dieselimport.ImportUseCase
	BatchUC     *dieselimport.BatchQueryUseCase
	ReportUC    *report.BatchReportUseCase
	ImportCfg   config.ImportConfig
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Plants (protegido)
	plants := protected.Group("/plants")
	plantHandler := NewPlantHandler(deps.PlantUC)
	plants.Post("/", plantHandler.Create)
	plants.Get("/", plantHandler.List)
	plants.Get("/:id", plantHandler.GetByID)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.ListByPlant)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Assets (protegido)
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.ListByPlant)
	assets.Get("/:id", assetHandler.GetByID)

	// Diesel: importación y lotes (protegido)
	diesel := protected.Group("/diesel")
	dieselHandler := NewDieselHandler(deps.ImportUC, deps.BatchUC, deps.ReportUC, deps.ImportCfg)
	diesel.Post("/import/preview", dieselHandler.Preview)
	diesel.Get("/batches", dieselHandler.ListBatches)
	diesel.Get("/batches/:id", dieselHandler.GetBatch)
	diesel.Get("/batches/:id/report", dieselHandler.BatchReport)

	// Confirmar y anular mueven inventario: solo admin y supervisor.
	gate := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)
	diesel.Post("/import/confirm", gate, dieselHandler.Confirm)
	diesel.Post("/batches/:id/reject", gate, dieselHandler.RejectBatch)
}

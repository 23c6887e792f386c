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

	"github.com/mantenpro/mantenpro-api/internal/application/auth"
	"github.com/mantenpro/mantenpro-api/internal/application/dieselimport"
	"github.com/mantenpro/mantenpro-api/internal/application/report"
	"github.com/mantenpro/mantenpro-api/internal/application/usecase"
	infraexcel "github.com/mantenpro/mantenpro-api/internal/infrastructure/excel"
	infrapdf "github.com/mantenpro/mantenpro-api/internal/infrastructure/pdf"
	"github.com/mantenpro/mantenpro-api/internal/infrastructure/postgres"
	httpRouter "github.com/mantenpro/mantenpro-api/internal/interfaces/http"
	"github.com/mantenpro/mantenpro-api/pkg/config"
	"github.com/mantenpro/mantenpro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	plantRepo := postgres.NewPlantRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	batchRepo := postgres.NewDieselBatchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	plantUC := usecase.NewPlantUseCase(plantRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, plantRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo, plantRepo)

	movementReader := infraexcel.NewMovementReader()
	importUC := dieselimport.NewImportUseCase(
		movementReader, txRunner,
		plantRepo, assetRepo, warehouseRepo, batchRepo,
		log,
	)
	batchUC := dieselimport.NewBatchQueryUseCase(batchRepo)

	// PDF: reporte de conciliación por lote
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewBatchReportUseCase(batchRepo, reportGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    (cfg.Import.MaxFileSizeMB + 1) * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MantenPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		PlantUC:     plantUC,
		WarehouseUC: warehouseUC,
		AssetUC:     assetUC,
		ImportUC:    importUC,
		BatchUC:     batchUC,
		ReportUC:    reportUC,
		ImportCfg:   cfg.Import,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

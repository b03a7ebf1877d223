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
	"github.com/jhoicas/aurexia-api/internal/application/analytics"
	"github.com/jhoicas/aurexia-api/internal/application/inventory"
	"github.com/jhoicas/aurexia-api/internal/application/production"
	"github.com/jhoicas/aurexia-api/internal/application/quality"
	"github.com/jhoicas/aurexia-api/internal/application/sales"
	"github.com/jhoicas/aurexia-api/internal/application/shipping"
	"github.com/jhoicas/aurexia-api/internal/application/shopfloor"
	infrapdf "github.com/jhoicas/aurexia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/aurexia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/aurexia-api/internal/interfaces/http"
	"github.com/jhoicas/aurexia-api/pkg/config"
	"github.com/jhoicas/aurexia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Int("risk_window_days", cfg.Fulfillment.RiskWindowDays).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.App.MigrateOnStart {
		migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		if err := migrator.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	salesOrderRepo := postgres.NewSalesOrderRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	inspectionRepo := postgres.NewQualityInspectionRepository(pool)
	travelSheetRepo := postgres.NewTravelSheetRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	partRepo := postgres.NewPartNumberRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Hoja viajera en PDF con QR por operación
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	salesUC := sales.NewUseCase(
		txRunner, salesOrderRepo, orderRepo, inspectionRepo, shipmentRepo, userRepo,
		log.Component("sales"),
	)
	productionUC := production.NewUseCase(
		txRunner, orderRepo, inspectionRepo, travelSheetRepo, partRepo, pdfGenerator,
		cfg.Fulfillment.RiskWindowDays, log.Component("production"),
	)
	shopfloorUC := shopfloor.NewUseCase(txRunner, travelSheetRepo, userRepo, log.Component("shopfloor"))
	qualityUC := quality.NewUseCase(txRunner, inspectionRepo, travelSheetRepo, log.Component("quality"))
	shippingUC := shipping.NewUseCase(txRunner, shipmentRepo, log.Component("shipping"))
	inventoryUC := inventory.NewUseCase(txRunner, movementRepo, log.Component("inventory"))
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo, cfg.Fulfillment.RiskWindowDays, log.Component("dashboard"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Aurexia ERP API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado, archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SalesUC:      salesUC,
		ProductionUC: productionUC,
		ShopfloorUC:  shopfloorUC,
		QualityUC:    qualityUC,
		ShippingUC:   shippingUC,
		InventoryUC:  inventoryUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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

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

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	infraaudit "github.com/jhoicas/Almacen-api/internal/infrastructure/audit"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	detailRepo := postgres.NewOrderDetailRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditor := infraaudit.NewLogRecorder(log)

	stockUC := inventory.NewStockUseCase(txRunner, auditor)
	stockQueryUC := inventory.NewStockQueryUseCase(productRepo, movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, txRunner, auditor)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, auditor)
	createOrderUC := orders.NewCreateOrderUseCase(txRunner, orderRepo, supplierRepo, productRepo, auditor)
	updateStatusUC := orders.NewUpdateStatusUseCase(txRunner, auditor)
	receiveOrderUC := orders.NewReceiveOrderUseCase(txRunner, stockUC, auditor)
	orderQueryUC := orders.NewOrderQueryUseCase(orderRepo, detailRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Escáner de órdenes vencidas / próximas a vencer (solo lectura)
	scannerCtx, stopScanner := context.WithCancel(ctx)
	defer stopScanner()
	scanner := orders.NewDueOrderScanner(orderRepo, log, cfg.Alerts.DueSoonDays)
	go scanner.Run(scannerCtx, time.Duration(cfg.Alerts.ScanIntervalMinutes)*time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacen API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		SupplierUC:   supplierUC,
		StockUC:      stockUC,
		StockQueryUC: stockQueryUC,
		CreateOrder:  createOrderUC,
		UpdateStatus: updateStatusUC,
		ReceiveOrder: receiveOrderUC,
		OrderQueryUC: orderQueryUC,
		AuthUC:       authUC,
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
	stopScanner()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

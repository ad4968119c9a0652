package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/tu-usuario/pos-pro/internal/application/analytics"
	"github.com/tu-usuario/pos-pro/internal/application/auth"
	appsales "github.com/tu-usuario/pos-pro/internal/application/sales"
	"github.com/tu-usuario/pos-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/pos-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/pos-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-pro/internal/interfaces/http"
	"github.com/tu-usuario/pos-pro/internal/interfaces/ws"
	"github.com/tu-usuario/pos-pro/internal/realtime"
	"github.com/tu-usuario/pos-pro/pkg/config"
	"github.com/tu-usuario/pos-pro/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Hub realtime: estado del proceso, una sola instancia.
	hub := realtime.NewHub(log)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, hub)
	productUC := usecase.NewProductUseCase(productRepo, hub)
	createSaleUC := appsales.NewCreateSaleUseCase(txRunner, hub)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	saleQueryUC := appsales.NewSaleQueryUseCase(saleRepo, receiptGen)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

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
		Title:    "POS Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status": "down", "db": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": "up"})
	})

	// Canal realtime
	wsHandler := ws.NewHandler(hub, log)
	app.Use("/ws", ws.UpgradeGuard)
	app.Get("/ws", websocket.New(wsHandler.Serve))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		CreateSale:  createSaleUC,
		SaleQuery:   saleQueryUC,
		DashboardUC: dashboardUC,
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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/libreria-api/internal/application/auth"
	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/application/usecase"
	"github.com/jhoicas/libreria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/libreria-api/internal/interfaces/http"
	"github.com/jhoicas/libreria-api/pkg/config"
	"github.com/jhoicas/libreria-api/pkg/logger"
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

	bookRepo := postgres.NewBookRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	movRepo := postgres.NewBookMovementRepository(pool)
	materialRepo := postgres.NewRawMaterialRepository(pool)
	mpMovRepo := postgres.NewRawMaterialMovementRepository(pool)
	posRepo := postgres.NewPointOfSaleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adjustUC := inventory.NewAdjustmentUseCase(txRunner, bookRepo, posRepo, userRepo)
	queryUC := inventory.NewQueryUseCase(ledgerRepo, bookRepo, movRepo, mpMovRepo)
	bookUC := usecase.NewBookUseCase(txRunner, bookRepo, ledgerRepo)
	materialUC := usecase.NewRawMaterialUseCase(txRunner, materialRepo, mpMovRepo)
	posUC := usecase.NewPointOfSaleUseCase(posRepo)
	userUC := usecase.NewUserUseCase(userRepo, posRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Librería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BookUC:        bookUC,
		RawMaterialUC: materialUC,
		PointOfSaleUC: posUC,
		UserUC:        userUC,
		AdjustUC:      adjustUC,
		QueryUC:       queryUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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

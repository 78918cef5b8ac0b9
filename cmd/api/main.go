package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/autoventas-api/docs"
	"github.com/jhoicas/autoventas-api/internal/application/auth"
	"github.com/jhoicas/autoventas-api/internal/application/sales"
	"github.com/jhoicas/autoventas-api/internal/application/usecase"
	"github.com/jhoicas/autoventas-api/internal/domain/repository"
	"github.com/jhoicas/autoventas-api/internal/infrastructure/mail"
	"github.com/jhoicas/autoventas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/autoventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/autoventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/autoventas-api/internal/interfaces/http"
	"github.com/jhoicas/autoventas-api/pkg/config"
	"github.com/jhoicas/autoventas-api/pkg/logger"
	"github.com/jhoicas/autoventas-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		userRepo repository.UserRepository
		saleRepo repository.VehicleSaleRepository
	)
	switch cfg.DB.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		userRepo, saleRepo = store.Users(), store.Sales()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		userRepo = postgres.NewUserRepository(pool)
		saleRepo = postgres.NewVehicleSaleRepository(pool)
	}

	hasher := password.NewHasher(cfg.Security.BcryptCost)
	mailer := mail.NewLogMailer(cfg.App.FrontendURL, log)
	authUC := auth.NewAuthUseCase(userRepo, hasher, mailer, auth.TokenConfig{
		Secret:    cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		AccessTTL: cfg.JWT.Expiration,
		ResetTTL:  cfg.JWT.ResetExpiration,
	}, cfg.Security.PhoneRegion)
	userUC := usecase.NewUserUseCase(userRepo, saleRepo, hasher, cfg.Security.PhoneRegion)
	saleUC := sales.NewSaleUseCase(saleRepo, userRepo, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type," + httpRouter.TokenHeader,
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Autoventas API",
	}))
	app.Get("/api/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API Running...")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: authUC,
		UserUC: userUC,
		SaleUC: saleUC,
		Log:    log,
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

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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/infrastructure/events"
	"github.com/jhoicas/Cantar-api/internal/infrastructure/gateway"
	infrapdf "github.com/jhoicas/Cantar-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cantar-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cantar-api/internal/infrastructure/redislock"
	httpRouter "github.com/jhoicas/Cantar-api/internal/interfaces/http"
	"github.com/jhoicas/Cantar-api/pkg/config"
	"github.com/jhoicas/Cantar-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		PlantID: cfg.App.PlantID,
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

	lookupRepo := postgres.NewLookupRepository(pool)
	lineRepo := postgres.NewOrderLineRepository(pool)
	ticketRepo := postgres.NewWeighTicketRepository(pool)

	// Bloqueo de líneas: Redis si hay varias terminales, memoria si solo hay una.
	var locker ports.RowLocker = cantar.NewMemoryRowLocker()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = redislock.NewRowLocker(rdb, cfg.Redis.RowLockTTL, log.Zerolog())
	}
	rows := cantar.NewEligibleRowResolver(lineRepo, locker)

	var gw ports.WeighingGateway
	if cfg.Gateway.Enabled() {
		gw = gateway.NewRESTGateway(cfg.Gateway.BaseURL, cfg.Gateway.Token, cfg.Gateway.Timeout)
	} else {
		log.Warn().Msg("GATEWAY_BASE_URL vacío: los pesajes quedan solo en local")
	}

	var publisher ports.EventPublisher = ports.NopPublisher{}
	if cfg.NATS.URL != "" {
		natsPub, nc, err := events.Connect(cfg.NATS.URL, cfg.App.Name+"-"+cfg.App.PlantID, cfg.NATS.Subject, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a NATS")
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				nc.Close()
			}
		}()
		publisher = natsPub
	}

	console := cantar.NewConsole(cantar.ConsoleDeps{
		PlantID: cfg.App.PlantID,
		Lookups: lookupRepo,
		Rows:    rows,
		Locker:  locker,
		Gateway: gw,
		Tickets: ticketRepo,
		Events:  publisher,
		Logger:  log.Zerolog(),
	})
	lookupUC := cantar.NewLookupUseCase(lookupRepo)
	ticketUC := cantar.NewTicketUseCase(ticketRepo, gw, infrapdf.NewMarotoTicketGenerator(cfg.App.PlantName), log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Gateway.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cântar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "plant_id": cfg.App.PlantID})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Console:   console,
		Lookups:   lookupUC,
		Rows:      rows,
		Tickets:   ticketUC,
		PlantID:   cfg.App.PlantID,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
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

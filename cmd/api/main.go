package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/VictorBenitezR/sistema-de-gestion/internal/application/analytics"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/auth"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	infrapdf "github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/pdf"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/infrastructure/storage"
	httpRouter "github.com/VictorBenitezR/sistema-de-gestion/internal/interfaces/http"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/config"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/idempotency"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/logger"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a base de datos")
	}
	defer store.Close()

	var m *metrics.Metrics
	var recorder sales.Recorder
	if cfg.Metrics.Enabled {
		m = metrics.New()
		recorder = m
	}

	// Idempotencia de ventas: Redis si está configurado, si no en memoria (un solo proceso).
	var idem idempotency.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		idem = idempotency.NewRedisStore(rdb, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: idempotencia en memoria, válida solo con una instancia")
		idem = idempotency.NewMemoryStore(cfg.Redis.IdempotencyTTL)
	}

	saleQueryUC := sales.NewQueryUseCase(store.Sales)
	receiptUC := sales.NewReceiptUseCase(saleQueryUC, store.Clients, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		CategoryUC:  usecase.NewCategoryUseCase(store.Categories),
		ProductUC:   usecase.NewProductUseCase(store.Products, store.Categories),
		ClientUC:    usecase.NewClientUseCase(store.Clients),
		UserUC:      usecase.NewUserUseCase(store.Users),
		RegisterUC:  sales.NewRegisterSaleUseCase(store.Tx, recorder),
		SaleQueryUC: saleQueryUC,
		ReceiptUC:   receiptUC,
		LedgerUC:    inventory.NewLedgerUseCase(store.Movements),
		InboundUC:   inventory.NewRegisterInboundUseCase(store.Tx),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Sales, store.Products),

		Idempotency:    idem,
		Metrics:        m,
		Logger:         log,
		JWTSecret:      cfg.JWT.Secret,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		MetricsPath:    cfg.Metrics.Path,
	})

	// Swagger UI en local: http://localhost:<port>/docs (requiere haber corrido swag init)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	}

	log.Debug().
		Str("addr", cfg.HTTP.Addr()).
		Bool("metrics", cfg.Metrics.Enabled).
		Int("login_rate_limit", cfg.HTTP.LoginRateLimit).
		Msg("configuración HTTP")

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

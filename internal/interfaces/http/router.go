package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/VictorBenitezR/sistema-de-gestion/internal/application/analytics"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/auth"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/usecase"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/domain/entity"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/idempotency"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/logger"
	"github.com/VictorBenitezR/sistema-de-gestion/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	UserUC      *usecase.UserUseCase
	RegisterUC  *sales.RegisterSaleUseCase
	SaleQueryUC *sales.QueryUseCase
	ReceiptUC   *sales.ReceiptUseCase
	LedgerUC    *inventory.LedgerUseCase
	InboundUC   *inventory.RegisterInboundUseCase
	DashboardUC *appanalytics.DashboardUseCase

	Idempotency idempotency.Store
	Metrics     *metrics.Metrics // opcional
	Logger      *logger.Logger   // opcional

	JWTSecret      string
	LoginRateLimit int // intentos por minuto e IP; 0 = sin límite
	MetricsPath    string
}

// NewApp construye la aplicación Fiber con middlewares comunes y todas las rutas.
func NewApp(appName string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: fiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.Logger != nil {
		app.Use(deps.Logger.RequestLogger())
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	})

	Router(app, deps)
	return app
}

// fiberErrorHandler errores que escapan de los handlers (404 de ruta, body demasiado grande, panics recuperados).
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if deps.LoginRateLimit > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_REQUESTS", Message: "demasiados intentos, espere un minuto"})
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), anyRole)
	protected.Get("/auth/me", authHandler.Me)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	saleHandler := NewSaleHandler(deps.RegisterUC, deps.SaleQueryUC, deps.ReceiptUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	if deps.Idempotency != nil {
		salesGroup.Post("/", IdempotencyMiddleware(deps.Idempotency), saleHandler.Register)
	} else {
		salesGroup.Post("/", saleHandler.Register)
	}
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	movementHandler := NewMovementHandler(deps.LedgerUC, deps.InboundUC)
	movements := protected.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Post("/inbound", adminOnly, movementHandler.RegisterInbound)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}

// Package server assembles the HTTP application from its services.
package server

import (
	"errors"
	"io"
	"os"
	"time"

	"boutique/internal/handlers"
	"boutique/internal/logger"
	"boutique/internal/middleware"
	"boutique/internal/repositories"
	"boutique/internal/services"
	"boutique/internal/storage"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bodyLimit leaves room for a full multi-image upload so size errors come
// from the upload check rather than the transport.
const bodyLimit = services.MaxUploadFiles*services.MaxUploadSize + 4<<20

// Options carries everything New needs.
type Options struct {
	DB            *gorm.DB
	Blobs         storage.BlobStore
	Notifier      services.OrderNotifier
	JWTSecret     string
	Admin         services.AdminConfig
	NotifyTimeout time.Duration
	PublicBaseURL string
	// AccessLog receives the access log. Defaults to stdout.
	AccessLog io.Writer
}

// Server is the assembled application.
type Server struct {
	App      *fiber.App
	Orders   *services.OrderService
	Products *services.ProductService
	Theme    *services.ThemeService
}

// New wires repositories, services and handlers into a Fiber app.
func New(opts Options) (*Server, error) {
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}
	blobs := opts.Blobs
	if blobs == nil {
		blobs = storage.NewMemoryStore()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(opts.DB)
	productRepo := repositories.NewGORMProductRepository(opts.DB)
	orderRepo := repositories.NewGORMOrderRepository(opts.DB)
	themeRepo := repositories.NewGORMThemeRepository(opts.DB)
	statsRepo := repositories.NewGORMStatsRepository(opts.DB)

	// --- Services ---
	gate, err := services.NewAdminGate(opts.Admin)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(userRepo, opts.JWTSecret)
	productService := services.NewProductService(productRepo, userRepo)
	orderService := services.NewOrderService(orderRepo, opts.Notifier, opts.NotifyTimeout)
	themeService := services.NewThemeService(themeRepo)
	statsService := services.NewStatsService(statsRepo, orderRepo, productRepo)
	uploadService := services.NewUploadService(blobs, opts.PublicBaseURL)

	// --- Handlers ---
	validate := services.NewValidator()
	authHandler := handlers.NewAuthHandler(authService, validate)
	productHandler := handlers.NewProductHandler(productService, validate)
	orderHandler := handlers.NewOrderHandler(orderService, validate)
	adminHandler := handlers.NewAdminHandler(gate, statsService, validate)
	themeHandler := handlers.NewThemeHandler(themeService, validate)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	app := fiber.New(fiber.Config{
		AppName:      "boutique",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: opts.AccessLog,
	}))
	app.Use(logger.RequestContext())

	userAuth := middleware.AuthRequired(authService)
	adminToken := middleware.AdminToken(gate)
	adminHeaders := middleware.AdminHeaders(gate)
	loginLimit := middleware.NewRateLimiter(middleware.LoginLimit, middleware.LoginBurst).Handler()

	// --- API Routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api, userAuth)

	admin := api.Group("/admin")
	adminHandler.RegisterRoutes(admin, adminToken, loginLimit)
	orderHandler.RegisterAdminRoutes(admin, adminToken)
	productHandler.RegisterAdminRoutes(admin, adminToken)

	themeHandler.RegisterRoutes(api, adminHeaders)
	uploadHandler.RegisterRoutes(api, adminHeaders)
	uploadHandler.RegisterFileRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		if sqlDB, err := opts.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return &Server{
		App:      app,
		Orders:   orderService,
		Products: productService,
		Theme:    themeService,
	}, nil
}

// errorHandler renders errors no handler answered itself as {message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	} else {
		logger.FromCtx(c.UserContext()).Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
	}
	return c.Status(code).JSON(fiber.Map{"message": msg})
}

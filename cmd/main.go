package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clientdesk/internal/caching"
	"clientdesk/internal/config"
	"clientdesk/internal/handlers"
	"clientdesk/internal/identity"
	"clientdesk/internal/jobs/background"
	"clientdesk/internal/middleware"
	"clientdesk/internal/repositories"
	"clientdesk/internal/saga"
	"clientdesk/internal/services"
	"clientdesk/internal/storage"
	"clientdesk/pkg/database"
	"clientdesk/pkg/logger"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	blobs, err := storage.NewMinioStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey,
		cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	if err := storage.EnsureBucket(ctx, blobs); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure storage bucket")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	identities := identity.NewAdminClient(cfg.Auth.BaseURL, cfg.Auth.ServiceKey)

	var notifier services.NotificationSender
	if cfg.Email.BaseURL != "" {
		notifier = services.NewHTTPEmailSender(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.From, log)
	} else {
		log.Warn().Msg("no email provider configured, invitation emails will only be logged")
		notifier = services.NewLogOnlySender(log)
	}

	// Repositories
	clientRepo := repositories.NewClientRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	projectRepo := repositories.NewProjectRepo(pool)
	fileRepo := repositories.NewFileRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	packageRepo := repositories.NewPackageRepo(pool)

	// Services
	coordinator := saga.NewCoordinator(log, saga.DefaultStepTimeout)
	invitationSvc := services.NewInvitationService(coordinator, identities, clientRepo,
		userRepo, projectRepo, packageRepo, cacheSvc, notifier, portalURL(cfg), log)
	fileSvc := services.NewFileService(coordinator, fileRepo, blobs, services.UploadLimits{
		AdminMaxBytes:  cfg.Uploads.AdminMaxBytes,
		ClientMaxBytes: cfg.Uploads.ClientMaxBytes,
	}, log)

	// Handlers
	invitationHandlers := handlers.NewInvitationHandlers(invitationSvc)
	fileHandlers := handlers.NewFileHandlers(fileSvc)
	clientHandlers := handlers.NewClientHandlers(clientRepo)
	projectHandlers := handlers.NewProjectHandlers(projectRepo)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceRepo)

	// Background consistency sweeper
	if cfg.Sweeper.Enabled {
		sweeper, err := background.NewSweeper(fileRepo, blobs, int(cfg.Sweeper.PageSize), log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create consistency sweeper")
		}
		if err := sweeper.Start(time.Duration(cfg.Sweeper.Interval) * time.Minute); err != nil {
			log.Fatal().Err(err).Msg("failed to start consistency sweeper")
		}
		defer sweeper.Stop()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health and metrics (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck(pool))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(middleware.PortalClaims)
		},
		SuccessHandler: middleware.AttachActor,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(jwtConfig))

	// Shared routes: the access guard inside each service/handler scopes
	// client actors to their own tenant.
	v1.GET("/clients/:id", clientHandlers.Get)
	v1.GET("/clients/:id/projects", projectHandlers.ListByClient)
	v1.GET("/clients/:id/invoices", invoiceHandlers.ListByClient)
	v1.GET("/clients/:id/files", fileHandlers.ListByClient)
	v1.GET("/projects/:id", projectHandlers.Get)
	v1.GET("/invoices/:id", invoiceHandlers.Get)
	v1.POST("/files", fileHandlers.Upload)
	v1.DELETE("/files/:id", fileHandlers.Delete)
	v1.GET("/files/:id/download", fileHandlers.Download)
	v1.GET("/files/:id/preview", fileHandlers.Preview)

	// Admin-only surface
	admin := v1.Group("", middleware.RequireAdmin())
	admin.POST("/invitations", invitationHandlers.InviteClient)
	admin.GET("/clients", clientHandlers.List)
	admin.POST("/clients", clientHandlers.Create)
	admin.PUT("/clients/:id", clientHandlers.Update)
	admin.DELETE("/clients/:id", clientHandlers.Delete)
	admin.POST("/projects", projectHandlers.Create)
	admin.PUT("/projects/:id/status", projectHandlers.UpdateStatus)
	admin.DELETE("/projects/:id", projectHandlers.Delete)
	admin.GET("/invoices", invoiceHandlers.List)

	log.Info().Str("version", version).Str("port", cfg.Port).Msg("clientdesk server starting")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func portalURL(cfg *config.Config) string {
	if cfg.Env == "development" {
		return "http://localhost:" + cfg.Port
	}
	return "https://portal.clientdesk.app"
}

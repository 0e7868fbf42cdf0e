package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ventia/ventia-backend/internal/changelog"
	"github.com/ventia/ventia-backend/internal/config"
	"github.com/ventia/ventia-backend/internal/handler"
	"github.com/ventia/ventia-backend/internal/middleware"
	"github.com/ventia/ventia-backend/internal/repository/postgres"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/token"
	"github.com/ventia/ventia-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize token manager
	tokens, err := token.NewManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token manager")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	pipelineRepo := postgres.NewPipelineRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// Initialize services
	recorder := changelog.NewRecorder(noteRepo)
	authService := service.NewAuthService(userRepo, workspaceRepo, tokens)
	contactService := service.NewContactService(contactRepo, companyRepo, userRepo, recorder)
	companyService := service.NewCompanyService(companyRepo, userRepo, recorder)
	leadService := service.NewLeadService(leadRepo, contactRepo, companyRepo, userRepo, pipelineRepo, recorder)
	pipelineService := service.NewPipelineService(pipelineRepo)
	noteService := service.NewNoteService(noteRepo)
	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(userRepo)
	statsService := service.NewStatsService(leadRepo)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	wsValidator := websocket.NewTokenValidator(tokens)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize)
	defer rateLimiter.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService, hub)
	companyHandler := handler.NewCompanyHandler(companyService, hub)
	leadHandler := handler.NewLeadHandler(leadService, hub)
	noteHandler := handler.NewNoteHandler(noteService, hub)
	pipelineHandler := handler.NewPipelineHandler(pipelineService, hub)
	productHandler := handler.NewProductHandler(productService, hub)
	userHandler := handler.NewUserHandler(userService)
	statsHandler := handler.NewStatsHandler(statsService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, authHandler, contactHandler, companyHandler, leadHandler, noteHandler, pipelineHandler, productHandler, userHandler, statsHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

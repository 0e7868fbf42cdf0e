package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ventia/ventia-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, contactHandler *ContactHandler, companyHandler *CompanyHandler, leadHandler *LeadHandler, noteHandler *NoteHandler, pipelineHandler *PipelineHandler, productHandler *ProductHandler, userHandler *UserHandler, statsHandler *StatsHandler, wsHandler *WebSocketHandler) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// WebSocket endpoint (token validated in the handler)
	e.GET("/ws", wsHandler.HandleWS)

	api := e.Group("/api")

	// Auth routes (unauthenticated, rate limited per client IP)
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(rateLimiter))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Contact routes (protected)
	contacts := api.Group("/contacts")
	contacts.Use(authMiddleware.Authenticate())
	contacts.GET("", contactHandler.GetContacts)
	contacts.POST("", contactHandler.CreateContact)
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	// Company routes (protected)
	companies := api.Group("/companies")
	companies.Use(authMiddleware.Authenticate())
	companies.GET("", companyHandler.GetCompanies)
	companies.POST("", companyHandler.CreateCompany)
	companies.PATCH("/:id", companyHandler.UpdateCompany)
	companies.DELETE("/:id", companyHandler.DeleteCompany)

	// Lead routes (protected)
	leads := api.Group("/leads")
	leads.Use(authMiddleware.Authenticate())
	leads.GET("", leadHandler.GetLeads)
	leads.POST("", leadHandler.CreateLead)
	leads.PATCH("/:id", leadHandler.UpdateLead)
	leads.DELETE("/:id", leadHandler.DeleteLead)

	// Note routes (protected)
	notes := api.Group("/notes")
	notes.Use(authMiddleware.Authenticate())
	notes.GET("", noteHandler.GetNotes)
	notes.POST("", noteHandler.CreateNote)

	// Pipeline routes (protected)
	pipelines := api.Group("/pipelines")
	pipelines.Use(authMiddleware.Authenticate())
	pipelines.GET("", pipelineHandler.GetPipeline)
	pipelines.POST("", pipelineHandler.SavePipeline)

	// Product routes (protected)
	products := api.Group("/products")
	products.Use(authMiddleware.Authenticate())
	products.GET("", productHandler.GetProducts)
	products.POST("", productHandler.CreateProduct)

	// User routes (protected)
	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate())
	users.GET("", userHandler.GetUsers)

	// Stats routes (protected)
	stats := api.Group("/stats")
	stats.Use(authMiddleware.Authenticate())
	stats.GET("", statsHandler.GetStats)
}

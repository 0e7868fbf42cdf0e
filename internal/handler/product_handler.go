package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/middleware"
	"github.com/ventia/ventia-backend/internal/service"
	"github.com/ventia/ventia-backend/internal/websocket"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	publisher      websocket.EventPublisher
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *service.ProductService, publisher websocket.EventPublisher) *ProductHandler {
	return &ProductHandler{productService: productService, publisher: publisher}
}

// CreateProductRequest represents the create product request body
type CreateProductRequest struct {
	Sku         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Stock       int32           `json:"stock"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          string          `json:"id"`
	Sku         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Stock       int32           `json:"stock"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// GetProducts handles GET /api/products
func (h *ProductHandler) GetProducts(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	products, err := h.productService.GetProducts(workspaceID)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to get products")
		return NewInternalError(c, "Failed to get products")
	}

	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = toProductResponse(product)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == uuid.Nil {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateProductInput{
		Sku:         req.Sku,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    req.Category,
		Stock:       req.Stock,
	}

	product, err := h.productService.CreateProduct(workspaceID, input)
	if err != nil {
		if errors.Is(err, domain.ErrSkuRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "sku", Message: "SKU is required"},
			})
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrPriceNegative) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "price", Message: "Price must not be negative"},
			})
		}
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to create product")
		return NewInternalError(c, "Failed to create product")
	}

	response := toProductResponse(product)
	h.publisher.Publish(workspaceID, websocket.ProductCreated(response))

	return c.JSON(http.StatusCreated, response)
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Sku:         product.Sku,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Currency:    product.Currency,
		Category:    product.Category,
		Stock:       product.Stock,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   product.UpdatedAt.Format(time.RFC3339),
	}
}

package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
)

// ProductService handles product catalog business logic
type ProductService struct {
	productRepo domain.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo domain.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProducts retrieves the active products of a workspace
func (s *ProductService) GetProducts(workspaceID uuid.UUID) ([]*domain.Product, error) {
	return s.productRepo.ListActiveByWorkspace(workspaceID)
}

// CreateProductInput contains input for creating a product
type CreateProductInput struct {
	Sku         string
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
	Category    string
	Stock       int32
}

// CreateProduct creates an active product
func (s *ProductService) CreateProduct(workspaceID uuid.UUID, input CreateProductInput) (*domain.Product, error) {
	sku := strings.TrimSpace(input.Sku)
	if sku == "" {
		return nil, domain.ErrSkuRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Price.IsNegative() {
		return nil, domain.ErrPriceNegative
	}

	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	product := &domain.Product{
		WorkspaceID: workspaceID,
		Sku:         sku,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Currency:    currency,
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
		IsActive:    true,
	}
	return s.productRepo.Create(product)
}

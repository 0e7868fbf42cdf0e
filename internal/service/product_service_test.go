package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventia/ventia-backend/internal/domain"
	"github.com/ventia/ventia-backend/internal/testutil"
)

func TestCreateProduct(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	svc := NewProductService(repo)
	workspaceID := uuid.New()

	created, err := svc.CreateProduct(workspaceID, CreateProductInput{
		Sku:   "SKU-001",
		Name:  "Licencia anual",
		Price: decimal.NewFromInt(499),
		Stock: 10,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if !created.IsActive {
		t.Error("new products should be active")
	}
	if created.Currency != "USD" {
		t.Errorf("currency = %q, want default USD", created.Currency)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(testutil.NewMockProductRepository())

	tests := []struct {
		name    string
		input   CreateProductInput
		wantErr error
	}{
		{"missing sku", CreateProductInput{Name: "X"}, domain.ErrSkuRequired},
		{"missing name", CreateProductInput{Sku: "S"}, domain.ErrNameRequired},
		{"negative price", CreateProductInput{Sku: "S", Name: "X", Price: decimal.NewFromInt(-1)}, domain.ErrPriceNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(uuid.New(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateProduct() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetProductsOnlyActive(t *testing.T) {
	repo := testutil.NewMockProductRepository()
	svc := NewProductService(repo)
	workspaceID := uuid.New()

	if _, err := svc.CreateProduct(workspaceID, CreateProductInput{Sku: "A", Name: "Activo"}); err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	inactive, err := repo.Create(&domain.Product{WorkspaceID: workspaceID, Sku: "B", Name: "Retirado"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	repo.Products[inactive.ID].IsActive = false

	products, err := svc.GetProducts(workspaceID)
	if err != nil {
		t.Fatalf("GetProducts() error = %v", err)
	}
	if len(products) != 1 || products[0].Sku != "A" {
		t.Errorf("GetProducts() = %v, want only the active product", products)
	}
}

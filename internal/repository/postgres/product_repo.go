package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ventia/ventia-backend/internal/domain"
)

// ProductRepository implements domain.ProductRepository using PostgreSQL
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create creates a new product
func (r *ProductRepository) Create(product *domain.Product) (*domain.Product, error) {
	ctx := context.Background()
	price, err := decimalToPgNumeric(product.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	created := *product
	created.ID = uuid.New()
	err = r.pool.QueryRow(ctx, `
		INSERT INTO products (id, workspace_id, sku, name, description, price, currency, category, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		created.ID, product.WorkspaceID, product.Sku, product.Name, product.Description,
		price, product.Currency, product.Category, product.Stock, product.IsActive,
	).Scan(&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &created, nil
}

// ListActiveByWorkspace retrieves all active products of a workspace
func (r *ProductRepository) ListActiveByWorkspace(workspaceID uuid.UUID) ([]*domain.Product, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, workspace_id, sku, name, description, price, currency, category, stock, is_active, created_at, updated_at
		FROM products WHERE workspace_id = $1 AND is_active
		ORDER BY created_at DESC`, workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var result []*domain.Product
	for rows.Next() {
		var p domain.Product
		var price pgtype.Numeric
		if err := rows.Scan(
			&p.ID, &p.WorkspaceID, &p.Sku, &p.Name, &p.Description, &price, &p.Currency,
			&p.Category, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price = pgNumericToDecimal(price)
		result = append(result, &p)
	}
	return result, rows.Err()
}

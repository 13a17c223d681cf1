package usecase

import (
	"context"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListProductsInput narrows a catalog listing.
type ListProductsInput struct {
	Category string
	// Active filters on the active flag when non-nil; All lists everything.
	Active *bool
	All    bool
}

// ProductInput defines the data for creating or replacing a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Active      bool
	ImageURL    string
	Category    string
}

// ProductUsecase defines the interface for catalog business operations.
type ProductUsecase interface {
	// List returns catalog products. Public callers see only active products
	// unless they ask for all.
	List(ctx context.Context, input *ListProductsInput) ([]*entity.Product, error)

	// Get returns a single product by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create adds a product to the catalog. Admin only.
	Create(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// Update replaces a product's fields. Admin only.
	Update(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)

	// Delete removes a product from the catalog. Admin only.
	Delete(ctx context.Context, id uuid.UUID) error
}

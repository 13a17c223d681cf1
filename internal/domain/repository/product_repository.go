// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category string
	// Active filters on the active flag when non-nil. IncludeAll overrides it.
	Active     *bool
	IncludeAll bool
}

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindActiveByID retrieves a product by ID only if its active flag is set.
	// Missing and inactive products are both reported as ErrProductNotFound.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// DecrementStock atomically decrements stock by qty only if the product is
	// active and its current stock is at least qty, in a single conditional
	// update. It reports whether a row matched; false means the stock was
	// insufficient or a concurrent reservation won the race.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)

	// FindByID retrieves a product regardless of its active flag.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List returns products matching the filter, sorted by name.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update replaces an existing product's fields.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

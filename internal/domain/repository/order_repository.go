package repository

import (
	"context"
	"errors"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not
// found. An ownership mismatch is reported identically so that existence of
// another user's order never leaks.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order with its line snapshots in a single insert.
	// The store assigns the order ID.
	Create(ctx context.Context, order *entity.Order) error

	// ListByOwner returns the given user's orders, newest first.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindByIDAndOwner retrieves an order only if it belongs to the given
	// user; otherwise ErrOrderNotFound.
	FindByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// ListAll returns every order, newest first. Admin surface only.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// FindByID retrieves an order regardless of owner. Admin surface only.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus unconditionally overwrites the order status. No transition
	// graph is enforced. Returns ErrOrderNotFound when no row matches.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}

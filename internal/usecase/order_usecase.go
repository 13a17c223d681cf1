// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
)

// CartItemInput is one requested cart line.
type CartItemInput struct {
	ProductID uuid.UUID
	Qty       int
}

// CheckoutInput defines the data required to place an order.
type CheckoutInput struct {
	Items           []CartItemInput
	DeliveryName    string
	DeliveryPhone   string
	DeliveryAddress string
	Notes           string
}

// CheckoutOutput returns the persisted order after a successful checkout.
type CheckoutOutput struct {
	Order *entity.Order
}

// OrderUsecase defines the interface for order-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type OrderUsecase interface {
	// Checkout validates the cart and delivery info, reserves stock per line
	// through the catalog's atomic conditional decrement, prices an immutable
	// snapshot and persists the order. Any line failure aborts the whole
	// checkout and no order is written.
	Checkout(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*CheckoutOutput, error)

	// ListMine returns the caller's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetMine returns the caller's order; a foreign or unknown order is
	// reported as not found.
	GetMine(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error)

	// AdminList returns all orders, newest first.
	AdminList(ctx context.Context) ([]*entity.Order, error)

	// AdminGet returns any order by ID.
	AdminGet(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// AdminUpdateStatus overwrites the status of any order. Only enum
	// membership is validated; any status may be set from any other.
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderCreated is the initial status of every order.
	OrderCreated OrderStatus = "CREATED"
	// OrderPaid marks an order as paid.
	OrderPaid OrderStatus = "PAID"
	// OrderCancelled marks an order as cancelled.
	OrderCancelled OrderStatus = "CANCELLED"
	// OrderDelivered marks an order as delivered.
	OrderDelivered OrderStatus = "DELIVERED"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value. Any valid status may be
// set from any other; no transition graph is enforced.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderCreated, OrderPaid, OrderCancelled, OrderDelivered:
		return true
	default:
		return false
	}
}

// OrderLine is an immutable priced snapshot of one cart line, copied from the
// product at checkout time. Later changes to the live product must never
// alter it.
type OrderLine struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Qty       int
	Subtotal  decimal.Decimal // round(UnitPrice * Qty, 2)
	ImageURL  string
}

// DeliveryInfo holds the validated delivery contact fields of an order.
type DeliveryInfo struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// Order is a completed checkout. It is created exactly once, its lines and
// total are frozen at creation, and only the status field is mutable
// afterwards (by admins).
type Order struct {
	ID        uuid.UUID
	Code      string // Human-readable display code, not a unique key.
	UserID    uuid.UUID
	Lines     []OrderLine // Cart order preserved.
	Total     decimal.Decimal
	Status    OrderStatus
	Delivery  DeliveryInfo
	CreatedAt time.Time
}

// NewOrderCode derives the human-readable order code from a timestamp,
// formatted as SR-YYYYMMDD-HHMMSS in UTC. Two checkouts within the same
// second share a code, so it is a display label only; uniqueness comes from
// the store-assigned order ID.
func NewOrderCode(now time.Time) string {
	return "SR-" + now.UTC().Format("20060102-150405")
}

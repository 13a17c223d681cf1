package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Stock is never negative: the checkout engine
// decrements it through an atomic conditional update, and only admin
// operations set or increment it.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal // Unit price, positive, 2 decimal places.
	Stock       int
	Active      bool // Inactive products are invisible to ordering.
	ImageURL    string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

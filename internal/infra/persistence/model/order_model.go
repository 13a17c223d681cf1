package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. The code column is a display label,
// deliberately not unique; the UUID primary key is the identity.
type OrderModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code            string          `gorm:"type:varchar(20);not null;index"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'CREATED'"`
	DeliveryName    string          `gorm:"type:varchar(100);not null"`
	DeliveryPhone   string          `gorm:"type:varchar(30);not null"`
	DeliveryAddress string          `gorm:"type:varchar(255);not null"`
	DeliveryNotes   string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"index"`
	UpdatedAt       time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table. Each row is a frozen
// snapshot of a product at checkout time; Position preserves cart order.
type OrderLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(150);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Qty       int             `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ImageURL  string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}

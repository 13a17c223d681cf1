package service

import (
	"context"
)

// Order event types published to the message queue.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusUpdated = "order.status_updated"
)

// OrderEvent represents an order lifecycle event for downstream consumers
// (fulfillment dashboards, analytics).
type OrderEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Type      string `json:"type"`
	OrderID   string `json:"order_id"`
	OrderCode string `json:"order_code"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
	Total     string `json:"total"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

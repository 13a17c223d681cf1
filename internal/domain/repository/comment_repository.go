package repository

import (
	"context"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
)

// CommentRepository defines the standard operations for product review persistence.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByProduct returns up to limit comments for a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]*entity.Comment, error)
}

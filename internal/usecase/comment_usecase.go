package usecase

import (
	"context"

	"saborreal/internal/domain/entity"

	"github.com/google/uuid"
)

// CommentInput defines the data required to post a product review.
type CommentInput struct {
	ProductID uuid.UUID
	Text      string
	Rating    int
}

// CommentUsecase defines the interface for product review operations.
type CommentUsecase interface {
	// Create posts a review on an active product.
	Create(ctx context.Context, userID uuid.UUID, input *CommentInput) (*entity.Comment, error)

	// ListByProduct returns up to limit reviews for a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]*entity.Comment, error)
}

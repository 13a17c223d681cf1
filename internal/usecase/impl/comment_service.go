package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "saborreal/internal/delivery/context"
	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	"saborreal/internal/domain/repository"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultCommentLimit = 50
	maxCommentLimit     = 200

	minRating = 1
	maxRating = 5
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for the comment service, injected by Fx.
type CommentServiceParams struct {
	fx.In

	CommentRepo repository.CommentRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		commentRepo: params.CommentRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// Create posts a review on an active product.
func (srv *commentService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CommentInput) (*entity.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domainerrors.ErrEmptyComment
	}

	if input.Rating < minRating || input.Rating > maxRating {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	_, err := srv.productRepo.FindActiveByID(ctx, input.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	comment := &entity.Comment{
		ProductID: input.ProductID,
		UserID:    userID,
		Text:      text,
		Rating:    input.Rating,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to create comment")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Comment created",
		slog.Any("commentID", comment.ID),
		slog.Any("productID", comment.ProductID),
	)

	return comment, nil
}

// ListByProduct returns up to limit reviews for a product, newest first. The
// limit is clamped to a sane page size.
func (srv *commentService) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]*entity.Comment, error) {
	if limit <= 0 {
		limit = defaultCommentLimit
	}
	if limit > maxCommentLimit {
		limit = maxCommentLimit
	}

	comments, err := srv.commentRepo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}

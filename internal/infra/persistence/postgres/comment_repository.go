package postgres

import (
	"context"

	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	"saborreal/internal/domain/repository"
	"saborreal/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commentRepository implements the repository.CommentRepository interface.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{
		db: db,
	}
}

// Create persists a new comment.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("comment violates a constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	// Update the entity with generated values
	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt

	return nil
}

// ListByProduct returns up to limit comments for a product, newest first.
func (repo *commentRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]*entity.Comment, error) {
	var commentModels []*model.CommentModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&commentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments by product")
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for _, commentM := range commentModels {
		comments = append(comments, toCommentDomain(commentM))
	}

	return comments, nil
}

// toCommentDomain converts a GORM model to a domain entity.
func toCommentDomain(commentM *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:        commentM.ID,
		ProductID: commentM.ProductID,
		UserID:    commentM.UserID,
		Text:      commentM.Text,
		Rating:    commentM.Rating,
		CreatedAt: commentM.CreatedAt,
	}
}

// fromCommentDomain converts a domain entity to a GORM model.
func fromCommentDomain(comment *entity.Comment) *model.CommentModel {
	return &model.CommentModel{
		ProductID: comment.ProductID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		Rating:    comment.Rating,
	}
}

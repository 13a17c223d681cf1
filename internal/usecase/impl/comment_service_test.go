package impl

import (
	"context"
	"testing"

	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	"saborreal/internal/domain/repository"
	mockRepo "saborreal/internal/mocks/repository"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commentServiceFixtures struct {
	service     usecase.CommentUsecase
	commentRepo *mockRepo.MockCommentRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestCommentService(t *testing.T) commentServiceFixtures {
	commentRepo := mockRepo.NewMockCommentRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewCommentService(CommentServiceParams{
		CommentRepo: commentRepo,
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	return commentServiceFixtures{
		service:     service,
		commentRepo: commentRepo,
		productRepo: productRepo,
	}
}

func TestCommentService_Create_Success(t *testing.T) {
	fx := createTestCommentService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: uuid.New(), Name: "Pan Frances", Active: true}

	fx.productRepo.EXPECT().FindActiveByID(ctx, product.ID).Return(product, nil)
	fx.commentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Comment")).
		Run(func(ctx context.Context, comment *entity.Comment) {
			comment.ID = uuid.New()
		}).
		Return(nil)

	comment, err := fx.service.Create(ctx, userID, &usecase.CommentInput{
		ProductID: product.ID,
		Text:      "  muy rico  ",
		Rating:    5,
	})

	require.NoError(t, err)
	assert.Equal(t, "muy rico", comment.Text)
	assert.Equal(t, 5, comment.Rating)
	assert.Equal(t, userID, comment.UserID)
}

func TestCommentService_Create_EmptyText(t *testing.T) {
	fx := createTestCommentService(t)

	comment, err := fx.service.Create(context.Background(), uuid.New(), &usecase.CommentInput{
		ProductID: uuid.New(),
		Text:      "   ",
		Rating:    4,
	})

	assert.Nil(t, comment)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyComment))
}

func TestCommentService_Create_RatingOutOfRange(t *testing.T) {
	fx := createTestCommentService(t)

	for _, rating := range []int{0, 6, -1} {
		comment, err := fx.service.Create(context.Background(), uuid.New(), &usecase.CommentInput{
			ProductID: uuid.New(),
			Text:      "ok",
			Rating:    rating,
		})

		assert.Nil(t, comment)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestCommentService_Create_InactiveProduct(t *testing.T) {
	fx := createTestCommentService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.productRepo.EXPECT().
		FindActiveByID(ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	comment, err := fx.service.Create(ctx, uuid.New(), &usecase.CommentInput{
		ProductID: productID,
		Text:      "ok",
		Rating:    3,
	})

	assert.Nil(t, comment)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCommentService_ListByProduct_ClampsLimit(t *testing.T) {
	fx := createTestCommentService(t)

	ctx := context.Background()
	productID := uuid.New()

	fx.commentRepo.EXPECT().ListByProduct(ctx, productID, 50).Return(nil, nil).Once()
	fx.commentRepo.EXPECT().ListByProduct(ctx, productID, 200).Return(nil, nil).Once()
	fx.commentRepo.EXPECT().ListByProduct(ctx, productID, 10).Return(nil, nil).Once()

	_, err := fx.service.ListByProduct(ctx, productID, 0)
	require.NoError(t, err)

	_, err = fx.service.ListByProduct(ctx, productID, 1000)
	require.NoError(t, err)

	_, err = fx.service.ListByProduct(ctx, productID, 10)
	require.NoError(t, err)
}

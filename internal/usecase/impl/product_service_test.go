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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productServiceFixtures struct {
	service     usecase.ProductUsecase
	productRepo *mockRepo.MockProductRepository
}

func createTestProductService(t *testing.T) productServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)

	service := NewProductService(ProductServiceParams{
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	return productServiceFixtures{
		service:     service,
		productRepo: productRepo,
	}
}

func TestProductService_List_DefaultsToActiveOnly(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	expected := []*entity.Product{{ID: uuid.New(), Name: "Pan Frances"}}

	fx.productRepo.EXPECT().
		List(ctx, mock.MatchedBy(func(filter repository.ProductFilter) bool {
			return filter.Active != nil && *filter.Active && !filter.IncludeAll
		})).
		Return(expected, nil)

	products, err := fx.service.List(ctx, &usecase.ListProductsInput{})

	require.NoError(t, err)
	assert.Equal(t, expected, products)
}

func TestProductService_List_AllOverridesActiveFilter(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		List(ctx, mock.MatchedBy(func(filter repository.ProductFilter) bool {
			return filter.IncludeAll && filter.Active == nil
		})).
		Return(nil, nil)

	_, err := fx.service.List(ctx, &usecase.ListProductsInput{All: true})

	require.NoError(t, err)
}

func TestProductService_Get_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.Get(ctx, id)

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_Create_Success(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()

	fx.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(ctx context.Context, product *entity.Product) {
			product.ID = uuid.New()
		}).
		Return(nil)

	product, err := fx.service.Create(ctx, &usecase.ProductInput{
		Name:     "  Croissant  ",
		Price:    decimal.RequireFromString("4.50"),
		Stock:    12,
		Active:   true,
		Category: "pasteleria",
	})

	require.NoError(t, err)
	assert.Equal(t, "Croissant", product.Name)
	assert.Equal(t, "4.50", product.Price.StringFixed(2))
	assert.Equal(t, 12, product.Stock)
	assert.True(t, product.Active)
}

func TestProductService_Update_ReplacesFields(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	existing := &entity.Product{
		ID:     uuid.New(),
		Name:   "Croissant",
		Price:  decimal.RequireFromString("4.50"),
		Stock:  12,
		Active: true,
	}

	fx.productRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
	fx.productRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(product *entity.Product) bool {
			return product.Name == "Croissant de Almendra" && product.Stock == 3 && !product.Active
		})).
		Return(nil)

	product, err := fx.service.Update(ctx, existing.ID, &usecase.ProductInput{
		Name:   "Croissant de Almendra",
		Price:  decimal.RequireFromString("5.90"),
		Stock:  3,
		Active: false,
	})

	require.NoError(t, err)
	assert.Equal(t, "5.90", product.Price.StringFixed(2))
}

func TestProductService_Update_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.Update(ctx, id, &usecase.ProductInput{Name: "x"})

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductService_Delete_NotFound(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().Delete(ctx, id).Return(repository.ErrProductNotFound)

	err := fx.service.Delete(ctx, id)

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

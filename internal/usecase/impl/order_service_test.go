package impl

import (
	"context"
	"testing"
	"time"

	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	"saborreal/internal/domain/repository"
	mockRepo "saborreal/internal/mocks/repository"
	mockSvc "saborreal/internal/mocks/service"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
	publisher *mockSvc.MockEventPublisher
}

func createTestOrderService(t *testing.T, now time.Time) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})
	service.(*orderService).now = func() time.Time { return now }

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

func validCheckoutInput(items ...usecase.CartItemInput) *usecase.CheckoutInput {
	return &usecase.CheckoutInput{
		Items:           items,
		DeliveryName:    "Maria Perez",
		DeliveryPhone:   "+51 999 111 222",
		DeliveryAddress: "Av. Central 123, Lima",
		Notes:           "ring the bell",
	}
}

func testProduct(name string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:     uuid.New(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Active: true,
	}
}

// expectTransaction routes the transaction callback to the given factory so
// the reservation loop runs against per-test repository mocks.
func expectTransaction(t *testing.T, fx orderServiceFixtures, factory *mockRepo.MockRepositoryFactory) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestOrderService_Checkout_Success(t *testing.T) {
	clock := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	fx := createTestOrderService(t, clock)

	ctx := context.Background()
	userID := uuid.New()
	product := testProduct("Pan Frances", "10.00", 5)

	productRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	expectTransaction(t, fx, factory)

	productRepo.EXPECT().FindActiveByID(ctx, product.ID).Return(product, nil)
	productRepo.EXPECT().DecrementStock(ctx, product.ID, 2).Return(true, nil)

	txOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(ctx context.Context, order *entity.Order) {
			order.ID = uuid.New()
		}).
		Return(nil)

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	output, err := fx.service.Checkout(ctx, userID, validCheckoutInput(
		usecase.CartItemInput{ProductID: product.ID, Qty: 2},
	))

	require.NoError(t, err)
	require.NotNil(t, output)

	order := output.Order
	assert.Equal(t, "SR-20240305-140709", order.Code)
	assert.Equal(t, entity.OrderCreated, order.Status)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, "20.00", order.Total.StringFixed(2))
	require.Len(t, order.Lines, 1)
	assert.Equal(t, product.ID, order.Lines[0].ProductID)
	assert.Equal(t, "Pan Frances", order.Lines[0].Name)
	assert.Equal(t, 2, order.Lines[0].Qty)
	assert.Equal(t, "10.00", order.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "20.00", order.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "Maria Perez", order.Delivery.Name)
	assert.Equal(t, clock, order.CreatedAt)
}

func TestOrderService_Checkout_MultiLineRounding(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	croissant := testProduct("Croissant", "3.333", 10)
	cake := testProduct("Torta de Chocolate", "2.50", 10)

	productRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	expectTransaction(t, fx, factory)

	productRepo.EXPECT().FindActiveByID(ctx, croissant.ID).Return(croissant, nil)
	productRepo.EXPECT().DecrementStock(ctx, croissant.ID, 3).Return(true, nil)
	productRepo.EXPECT().FindActiveByID(ctx, cake.ID).Return(cake, nil)
	productRepo.EXPECT().DecrementStock(ctx, cake.ID, 1).Return(true, nil)

	txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.Anything).Return(nil)

	output, err := fx.service.Checkout(ctx, uuid.New(), validCheckoutInput(
		usecase.CartItemInput{ProductID: croissant.ID, Qty: 3},
		usecase.CartItemInput{ProductID: cake.ID, Qty: 1},
	))

	require.NoError(t, err)
	require.Len(t, output.Order.Lines, 2)
	// 3.333 * 3 = 9.999, rounded per line before summing.
	assert.Equal(t, "10.00", output.Order.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "2.50", output.Order.Lines[1].Subtotal.StringFixed(2))
	assert.Equal(t, "12.50", output.Order.Total.StringFixed(2))
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	output, err := fx.service.Checkout(context.Background(), uuid.New(), validCheckoutInput())

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmptyCart))
}

func TestOrderService_Checkout_DeliveryValidation(t *testing.T) {
	item := usecase.CartItemInput{ProductID: uuid.New(), Qty: 1}

	tests := []struct {
		name    string
		mutate  func(*usecase.CheckoutInput)
		wantErr error
	}{
		{
			name:    "blank name",
			mutate:  func(in *usecase.CheckoutInput) { in.DeliveryName = "   " },
			wantErr: domainerrors.ErrDeliveryName,
		},
		{
			name:    "phone too short",
			mutate:  func(in *usecase.CheckoutInput) { in.DeliveryPhone = "12345" },
			wantErr: domainerrors.ErrDeliveryPhone,
		},
		{
			name:    "phone with letters",
			mutate:  func(in *usecase.CheckoutInput) { in.DeliveryPhone = "99call9999" },
			wantErr: domainerrors.ErrDeliveryPhone,
		},
		{
			name:    "address too short",
			mutate:  func(in *usecase.CheckoutInput) { in.DeliveryAddress = "Av 1" },
			wantErr: domainerrors.ErrDeliveryAddress,
		},
		{
			name: "name failure reported before phone failure",
			mutate: func(in *usecase.CheckoutInput) {
				in.DeliveryName = ""
				in.DeliveryPhone = "bad"
			},
			wantErr: domainerrors.ErrDeliveryName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t, time.Now())

			input := validCheckoutInput(item)
			tt.mutate(input)

			output, err := fx.service.Checkout(context.Background(), uuid.New(), input)

			assert.Nil(t, output)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestOrderService_Checkout_InvalidQuantity(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	factory := mockRepo.NewMockRepositoryFactory(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(mockRepo.NewMockOrderRepository(t))
	expectTransaction(t, fx, factory)

	output, err := fx.service.Checkout(ctx, uuid.New(), validCheckoutInput(
		usecase.CartItemInput{ProductID: uuid.New(), Qty: 0},
	))

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))
}

func TestOrderService_Checkout_ProductUnavailable(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	missingID := uuid.New()

	productRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(mockRepo.NewMockOrderRepository(t))
	expectTransaction(t, fx, factory)

	productRepo.EXPECT().
		FindActiveByID(ctx, missingID).
		Return(nil, repository.ErrProductNotFound)

	output, err := fx.service.Checkout(ctx, uuid.New(), validCheckoutInput(
		usecase.CartItemInput{ProductID: missingID, Qty: 1},
	))

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrProductUnavailable))
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	product := testProduct("Croissant", "4.50", 1)

	productRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(mockRepo.NewMockOrderRepository(t))
	expectTransaction(t, fx, factory)

	productRepo.EXPECT().FindActiveByID(ctx, product.ID).Return(product, nil)
	productRepo.EXPECT().DecrementStock(ctx, product.ID, 3).Return(false, nil)

	output, err := fx.service.Checkout(ctx, uuid.New(), validCheckoutInput(
		usecase.CartItemInput{ProductID: product.ID, Qty: 3},
	))

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Croissant", appErr.Details())
}

// A later line losing its stock race aborts the whole checkout; no order is
// written for the lines already decremented.
func TestOrderService_Checkout_SecondLineFailureAborts(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	first := testProduct("Pan Frances", "1.50", 10)
	second := testProduct("Torta de Chocolate", "30.00", 1)

	productRepo := mockRepo.NewMockProductRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(mockRepo.NewMockOrderRepository(t))
	expectTransaction(t, fx, factory)

	productRepo.EXPECT().FindActiveByID(ctx, first.ID).Return(first, nil)
	productRepo.EXPECT().DecrementStock(ctx, first.ID, 2).Return(true, nil)
	productRepo.EXPECT().FindActiveByID(ctx, second.ID).Return(second, nil)
	productRepo.EXPECT().DecrementStock(ctx, second.ID, 2).Return(false, nil)

	output, err := fx.service.Checkout(ctx, uuid.New(), validCheckoutInput(
		usecase.CartItemInput{ProductID: first.ID, Qty: 2},
		usecase.CartItemInput{ProductID: second.ID, Qty: 2},
	))

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestOrderService_Checkout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	product := testProduct("Pan Frances", "2.00", 5)

	productRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo)
	factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	expectTransaction(t, fx, factory)

	productRepo.EXPECT().FindActiveByID(ctx, product.ID).Return(product, nil)
	productRepo.EXPECT().DecrementStock(ctx, product.ID, 1).Return(true, nil)
	txOrderRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.Anything).
		Return(errors.New("broker down"))

	output, err := fx.service.Checkout(ctx, uuid.New(), validCheckoutInput(
		usecase.CartItemInput{ProductID: product.ID, Qty: 1},
	))

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestOrderService_GetMine_NotFound(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	orderID := uuid.New()
	userID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByIDAndOwner(ctx, orderID, userID).
		Return(nil, repository.ErrOrderNotFound)

	order, err := fx.service.GetMine(ctx, orderID, userID)

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_ListMine(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.Order{{ID: uuid.New(), Code: "SR-20240305-140709"}}

	fx.orderRepo.EXPECT().ListByOwner(ctx, userID).Return(expected, nil)

	orders, err := fx.service.ListMine(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, orders)
}

func TestOrderService_AdminUpdateStatus_Success(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().UpdateStatus(ctx, orderID, entity.OrderPaid).Return(nil)
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.Anything).Return(nil)

	err := fx.service.AdminUpdateStatus(ctx, orderID, entity.OrderPaid)

	require.NoError(t, err)
}

func TestOrderService_AdminUpdateStatus_InvalidStatus(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	err := fx.service.AdminUpdateStatus(context.Background(), uuid.New(), entity.OrderStatus("SHIPPED"))

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStatus))
}

func TestOrderService_AdminUpdateStatus_NotFound(t *testing.T) {
	fx := createTestOrderService(t, time.Now())

	ctx := context.Background()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		UpdateStatus(ctx, orderID, entity.OrderCancelled).
		Return(repository.ErrOrderNotFound)

	err := fx.service.AdminUpdateStatus(ctx, orderID, entity.OrderCancelled)

	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

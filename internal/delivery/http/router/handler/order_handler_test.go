package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"saborreal/internal/delivery/http/validator"
	"saborreal/internal/domain/entity"
	domainerrors "saborreal/internal/domain/errors"
	servicemocks "saborreal/internal/mocks/service"
	usecasemocks "saborreal/internal/mocks/usecase"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderHandlerFixtures struct {
	uc        *usecasemocks.MockOrderUsecase
	qrService *servicemocks.MockQRCodeService
	handler   *OrderHandler
	echo      *echo.Echo
}

func createTestOrderHandler(t *testing.T) orderHandlerFixtures {
	t.Helper()

	uc := usecasemocks.NewMockOrderUsecase(t)
	qrService := servicemocks.NewMockQRCodeService(t)

	e := echo.New()
	e.Validator = validator.New()

	return orderHandlerFixtures{
		uc:        uc,
		qrService: qrService,
		handler:   NewOrderHandler(uc, qrService),
		echo:      e,
	}
}

func newAuthedContext(fx orderHandlerFixtures, method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)
	c.Set("userID", userID)
	c.Set("roles", []string{"customer"})

	return c, rec
}

func testOrder(userID uuid.UUID) *entity.Order {
	return &entity.Order{
		ID:     uuid.New(),
		Code:   "SR-20240305-140709",
		UserID: userID,
		Lines: []entity.OrderLine{
			{
				ProductID: uuid.New(),
				Name:      "Croissant",
				UnitPrice: decimal.RequireFromString("2.20"),
				Qty:       2,
				Subtotal:  decimal.RequireFromString("4.40"),
			},
		},
		Total:  decimal.RequireFromString("4.40"),
		Status: entity.OrderCreated,
		Delivery: entity.DeliveryInfo{
			Name:    "Maria Perez",
			Phone:   "+51 999 111 222",
			Address: "Av. Central 123, Lima",
		},
		CreatedAt: time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}
}

func TestOrderHandler_CreateOrder_Success(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()
	productID := uuid.New()
	order := testOrder(userID)

	fx.uc.EXPECT().
		Checkout(mock.Anything, userID, mock.MatchedBy(func(input *usecase.CheckoutInput) bool {
			return len(input.Items) == 1 &&
				input.Items[0].ProductID == productID &&
				input.Items[0].Qty == 2 &&
				input.DeliveryName == "Maria Perez"
		})).
		Return(&usecase.CheckoutOutput{Order: order}, nil)

	body := `{
		"items": [{"producto_id": "` + productID.String() + `", "qty": 2}],
		"delivery_nombre": "Maria Perez",
		"delivery_telefono": "+51 999 111 222",
		"delivery_direccion": "Av. Central 123, Lima"
	}`
	c, rec := newAuthedContext(fx, http.MethodPost, "/api/orders", body, userID)

	err := fx.handler.CreateOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"SR-20240305-140709"`)
	assert.Contains(t, rec.Body.String(), `"status":"CREATED"`)
	assert.Contains(t, rec.Body.String(), `"total":4.4`)
}

func TestOrderHandler_CreateOrder_MalformedProductID(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()

	body := `{
		"items": [{"producto_id": "not-a-uuid", "qty": 1}],
		"delivery_nombre": "Maria Perez",
		"delivery_telefono": "+51 999 111 222",
		"delivery_direccion": "Av. Central 123, Lima"
	}`
	c, rec := newAuthedContext(fx, http.MethodPost, "/api/orders", body, userID)

	err := fx.handler.CreateOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestOrderHandler_CreateOrder_MissingUserID(t *testing.T) {
	fx := createTestOrderHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := fx.echo.NewContext(req, rec)

	err := fx.handler.CreateOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderHandler_CreateOrder_UsecaseError(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()
	productID := uuid.New()

	fx.uc.EXPECT().
		Checkout(mock.Anything, userID, mock.Anything).
		Return(nil, domainerrors.ErrInsufficientStock.WithDetails("Croissant"))

	body := `{
		"items": [{"producto_id": "` + productID.String() + `", "qty": 99}],
		"delivery_nombre": "Maria Perez",
		"delivery_telefono": "+51 999 111 222",
		"delivery_direccion": "Av. Central 123, Lima"
	}`
	c, _ := newAuthedContext(fx, http.MethodPost, "/api/orders", body, userID)

	err := fx.handler.CreateOrder(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestOrderHandler_GetMyOrder_InvalidID(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()

	c, rec := newAuthedContext(fx, http.MethodGet, "/api/orders/abc", "", userID)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := fx.handler.GetMyOrder(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_GetMyOrderQR(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()
	order := testOrder(userID)

	fx.uc.EXPECT().GetMine(mock.Anything, order.ID, userID).Return(order, nil)
	fx.qrService.EXPECT().GenerateOrderQR(order.Code).Return([]byte{0x89, 0x50, 0x4E, 0x47}, nil)

	c, rec := newAuthedContext(fx, http.MethodGet, "/api/orders/"+order.ID.String()+"/qrcode", "", userID)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())

	err := fx.handler.GetMyOrderQR(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, rec.Body.Bytes())
}

func TestOrderHandler_ListMyOrders(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()
	orders := []*entity.Order{testOrder(userID), testOrder(userID)}

	fx.uc.EXPECT().ListMine(mock.Anything, userID).Return(orders, nil)

	c, rec := newAuthedContext(fx, http.MethodGet, "/api/orders", "", userID)

	err := fx.handler.ListMyOrders(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_AdminUpdateOrderStatus(t *testing.T) {
	fx := createTestOrderHandler(t)
	userID := uuid.New()
	order := testOrder(userID)
	order.Status = entity.OrderPaid

	fx.uc.EXPECT().AdminUpdateStatus(mock.Anything, order.ID, entity.OrderPaid).Return(nil)
	fx.uc.EXPECT().AdminGet(mock.Anything, order.ID).Return(order, nil)

	c, rec := newAuthedContext(fx, http.MethodPatch, "/api/admin/orders/"+order.ID.String(), `{"status": "paid"}`, userID)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())

	err := fx.handler.AdminUpdateOrderStatus(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"PAID"`)
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"saborreal/internal/delivery/http/response"
	"saborreal/internal/domain/entity"
	"saborreal/internal/domain/service"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc        usecase.OrderUsecase
	qrService service.QRCodeService
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, qrService service.QRCodeService) *OrderHandler {
	return &OrderHandler{
		uc:        uc,
		qrService: qrService,
	}
}

type cartItemRequest struct {
	ProductoID string `json:"producto_id"`
	Qty        int    `json:"qty"`
}

type checkoutRequest struct {
	Items             []cartItemRequest `json:"items"`
	DeliveryNombre    string            `json:"delivery_nombre"`
	DeliveryTelefono  string            `json:"delivery_telefono"`
	DeliveryDireccion string            `json:"delivery_direccion"`
	Notas             string            `json:"notas"`
}

type orderLineResponse struct {
	ProductoID string  `json:"producto_id"`
	Nombre     string  `json:"nombre"`
	Precio     float64 `json:"precio"`
	Qty        int     `json:"qty"`
	Subtotal   float64 `json:"subtotal"`
	ImagenURL  string  `json:"imagenUrl,omitempty"`
}

type deliveryInfoResponse struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Notas     string `json:"notas,omitempty"`
}

type orderResponse struct {
	ID       string               `json:"_id"`
	Code     string               `json:"code"`
	Items    []orderLineResponse  `json:"items"`
	Total    float64              `json:"total"`
	Status   string               `json:"status"`
	Delivery deliveryInfoResponse `json:"delivery"`
	CreadoAt time.Time            `json:"creadoAt"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrder handles the checkout request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	input := &usecase.CheckoutInput{
		Items:           make([]usecase.CartItemInput, 0, len(req.Items)),
		DeliveryName:    req.DeliveryNombre,
		DeliveryPhone:   req.DeliveryTelefono,
		DeliveryAddress: req.DeliveryDireccion,
		Notes:           req.Notas,
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID: "+item.ProductoID)
		}
		input.Items = append(input.Items, usecase.CartItemInput{ProductID: productID, Qty: item.Qty})
	}

	output, err := h.uc.Checkout(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(output.Order), "Order created successfully")
}

// ListMyOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponseSlice(orders), "")
}

// GetMyOrder returns one of the caller's orders.
func (h *OrderHandler) GetMyOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetMine(c.Request().Context(), orderID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "")
}

// GetMyOrderQR renders the order code of one of the caller's orders as a PNG
// QR image.
func (h *OrderHandler) GetMyOrderQR(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetMine(c.Request().Context(), orderID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrService.GenerateOrderQR(order.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// AdminListOrders returns every order, newest first.
func (h *OrderHandler) AdminListOrders(c echo.Context) error {
	orders, err := h.uc.AdminList(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponseSlice(orders), "")
}

// AdminGetOrder returns any order by ID.
func (h *OrderHandler) AdminGetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.AdminGet(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "")
}

// AdminUpdateOrderStatus overwrites the status of any order.
func (h *OrderHandler) AdminUpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	status := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err := h.uc.AdminUpdateStatus(c.Request().Context(), orderID, status); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.AdminGet(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order status updated")
}

func toOrderResponse(order *entity.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineResponse{
			ProductoID: line.ProductID.String(),
			Nombre:     line.Name,
			Precio:     line.UnitPrice.InexactFloat64(),
			Qty:        line.Qty,
			Subtotal:   line.Subtotal.InexactFloat64(),
			ImagenURL:  line.ImageURL,
		})
	}

	return orderResponse{
		ID:     order.ID.String(),
		Code:   order.Code,
		Items:  lines,
		Total:  order.Total.InexactFloat64(),
		Status: order.Status.String(),
		Delivery: deliveryInfoResponse{
			Nombre:    order.Delivery.Name,
			Telefono:  order.Delivery.Phone,
			Direccion: order.Delivery.Address,
			Notas:     order.Delivery.Notes,
		},
		CreadoAt: order.CreatedAt,
	}
}

func toOrderResponseSlice(orders []*entity.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}

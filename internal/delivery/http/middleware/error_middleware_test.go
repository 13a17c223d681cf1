package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "saborreal/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestErrorContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestErrorMiddleware_AppError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newTestErrorContext(t)

	m.HandleHTTPError(domainerrors.ErrInsufficientStock.WithDetails("Croissant"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSUFFICIENT_STOCK")
	assert.Contains(t, rec.Body.String(), "Croissant")
}

func TestErrorMiddleware_WrappedAppError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newTestErrorContext(t)

	m.HandleHTTPError(errors.Wrap(domainerrors.ErrOrderNotFound, "lookup failed"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
}

func TestErrorMiddleware_DeliveryValidationError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newTestErrorContext(t)

	m.HandleHTTPError(domainerrors.ErrDeliveryPhone, c)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "DELIVERY_PHONE_INVALID")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newTestErrorContext(t)

	m.HandleHTTPError(echo.NewHTTPError(http.StatusBadRequest, "bad payload"), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad payload")
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newTestErrorContext(t)

	m.HandleHTTPError(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "boom")
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"saborreal/internal/delivery/http/response"
	"saborreal/internal/domain/entity"
	"saborreal/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{
		uc: uc,
	}
}

type productRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Activo      *bool   `json:"activo"`
	ImagenURL   string  `json:"imagenUrl"`
	Categoria   string  `json:"categoria"`
	// Older frontends send "disponible" instead of "activo".
	Disponible *bool `json:"disponible"`
}

type productResponse struct {
	ID          string    `json:"_id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Precio      float64   `json:"precio"`
	Stock       int       `json:"stock"`
	Activo      bool      `json:"activo"`
	Disponible  bool      `json:"disponible"`
	ImagenURL   string    `json:"imagenUrl,omitempty"`
	Categoria   string    `json:"categoria,omitempty"`
	CreadoAt    time.Time `json:"creadoAt"`
}

// ListProducts handles the public catalog listing.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	input, err := listInputFromQuery(c, false)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid filter parameters")
	}

	products, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseSlice(products), "")
}

// GetProduct handles the public single-product lookup.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	product, err := h.uc.Get(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "")
}

// AdminListProducts lists the catalog for admins, defaulting to everything
// including inactive products.
func (h *ProductHandler) AdminListProducts(c echo.Context) error {
	input, err := listInputFromQuery(c, true)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid filter parameters")
	}

	products, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseSlice(products), "")
}

// AdminCreateProduct adds a product to the catalog.
func (h *ProductHandler) AdminCreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.Create(c.Request().Context(), toProductInput(&req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// AdminUpdateProduct replaces a product's fields.
func (h *ProductHandler) AdminUpdateProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.Update(c.Request().Context(), productID, toProductInput(&req))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// AdminDeleteProduct removes a product from the catalog.
func (h *ProductHandler) AdminDeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	if err := h.uc.Delete(c.Request().Context(), productID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"ok": true}, "Product deleted successfully")
}

// listInputFromQuery builds a catalog filter from the categoria, activo and
// all query parameters. Admin listings see everything unless asked otherwise.
func listInputFromQuery(c echo.Context, adminDefaultAll bool) (*usecase.ListProductsInput, error) {
	input := &usecase.ListProductsInput{
		Category: c.QueryParam("categoria"),
		All:      adminDefaultAll,
	}

	if raw := c.QueryParam("all"); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid all parameter")
		}
		input.All = all
	}

	if raw := c.QueryParam("activo"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid activo parameter")
		}
		input.Active = &active
		input.All = false
	}

	return input, nil
}

func toProductInput(req *productRequest) *usecase.ProductInput {
	// "disponible" is an alias for "activo"; a product is active by default.
	active := true
	switch {
	case req.Activo != nil:
		active = *req.Activo
	case req.Disponible != nil:
		active = *req.Disponible
	}

	return &usecase.ProductInput{
		Name:        req.Nombre,
		Description: req.Descripcion,
		Price:       decimal.NewFromFloat(req.Precio).Round(2),
		Stock:       req.Stock,
		Active:      active,
		ImageURL:    req.ImagenURL,
		Category:    req.Categoria,
	}
}

func toProductResponse(product *entity.Product) productResponse {
	return productResponse{
		ID:          product.ID.String(),
		Nombre:      product.Name,
		Descripcion: product.Description,
		Precio:      product.Price.InexactFloat64(),
		Stock:       product.Stock,
		Activo:      product.Active,
		Disponible:  product.Active,
		ImagenURL:   product.ImageURL,
		Categoria:   product.Category,
		CreadoAt:    product.CreatedAt,
	}
}

func toProductResponseSlice(products []*entity.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

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
)

// CommentHandler holds dependencies for product review handlers.
type CommentHandler struct {
	uc usecase.CommentUsecase
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		uc: uc,
	}
}

type createCommentRequest struct {
	ProductoID string `json:"producto_id" validate:"required"`
	Texto      string `json:"texto" validate:"max=500"`
	Rating     int    `json:"rating"`
}

type commentResponse struct {
	ID         string    `json:"_id"`
	ProductoID string    `json:"producto_id"`
	UsuarioID  string    `json:"usuario_id"`
	Texto      string    `json:"texto"`
	Rating     int       `json:"rating"`
	CreadoAt   time.Time `json:"creadoAt"`
}

// ListComments returns reviews for one product, newest first.
func (h *CommentHandler) ListComments(c echo.Context) error {
	productID, err := uuid.Parse(c.QueryParam("producto_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid producto_id parameter")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid limit parameter")
		}
	}

	comments, err := h.uc.ListByProduct(c.Request().Context(), productID, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponseSlice(comments), "")
}

// CreateComment posts a review on an active product.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	productID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid producto_id")
	}

	comment, err := h.uc.Create(c.Request().Context(), userID, &usecase.CommentInput{
		ProductID: productID,
		Text:      req.Texto,
		Rating:    req.Rating,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentResponse(comment), "Comment created successfully")
}

func toCommentResponse(comment *entity.Comment) commentResponse {
	return commentResponse{
		ID:         comment.ID.String(),
		ProductoID: comment.ProductID.String(),
		UsuarioID:  comment.UserID.String(),
		Texto:      comment.Text,
		Rating:     comment.Rating,
		CreadoAt:   comment.CreatedAt,
	}
}

func toCommentResponseSlice(comments []*entity.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}

	return out
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"saborreal/internal/delivery/http/middleware"
	"saborreal/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	CommentHandler *handler.CommentHandler
	OrderHandler   *handler.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	commentHandler *handler.CommentHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		commentHandler: params.CommentHandler,
		orderHandler:   params.OrderHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	}

	// Public catalog routes
	productGroup := api.Group("/productos")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)
	}

	// Product reviews; posting requires authentication
	commentGroup := api.Group("/comentarios")
	{
		commentGroup.GET("", r.commentHandler.ListComments)
		commentGroup.POST("", r.commentHandler.CreateComment, r.authMiddleware.Authenticate)
	}

	// Order routes that require authentication
	orderGroup := api.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("", r.orderHandler.ListMyOrders)
		orderGroup.GET("/:id", r.orderHandler.GetMyOrder)
		orderGroup.GET("/:id/qrcode", r.orderHandler.GetMyOrderQR)
	}

	// Admin routes that require authentication and the "admin" role
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole("admin"))
	{
		adminGroup.GET("/products", r.productHandler.AdminListProducts)
		adminGroup.POST("/products", r.productHandler.AdminCreateProduct)
		adminGroup.PUT("/products/:id", r.productHandler.AdminUpdateProduct)
		adminGroup.DELETE("/products/:id", r.productHandler.AdminDeleteProduct)

		adminGroup.GET("/orders", r.orderHandler.AdminListOrders)
		adminGroup.GET("/orders/:id", r.orderHandler.AdminGetOrder)
		adminGroup.PATCH("/orders/:id", r.orderHandler.AdminUpdateOrderStatus)
	}
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/router/handler"
	"market/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	MessageHandler *handler.MessageHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	messageHandler *handler.MessageHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		messageHandler: params.MessageHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Public catalogue routes
	e.GET("/products", r.productHandler.ListProducts)
	e.GET("/products/:id", r.productHandler.GetProduct)
	e.GET("/products/:id/qrcode", r.productHandler.ProductQR)
	e.POST("/products/scan", r.productHandler.ScanProductQR)
	e.GET("/sellers/:id/reviews", r.reviewHandler.ListSellerReviews)
	e.GET("/users/:id", r.userHandler.GetUser)

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.POST("/become-seller", r.userHandler.BecomeSeller)
		userGroup.GET("/messages", r.messageHandler.ListMessages)
		userGroup.GET("/messages/stream", r.messageHandler.StreamMessages)
		userGroup.POST("/appeals", r.adminHandler.SubmitAppeal)
	}

	// Seller routes that require authentication and the "seller" role
	sellerGroup := e.Group("/seller")
	sellerGroup.Use(r.authMiddleware.Authenticate)
	sellerGroup.Use(r.authMiddleware.RequireRole(entity.RoleSeller.String()))
	{
		sellerGroup.POST("/products", r.productHandler.CreateProduct)
		sellerGroup.PATCH("/products/:id", r.productHandler.UpdateProduct)
		sellerGroup.DELETE("/products/:id", r.productHandler.RemoveProduct)
		sellerGroup.POST("/products/:id/relist", r.productHandler.RelistProduct)
		sellerGroup.POST("/orders/:id/confirm", r.orderHandler.ConfirmOrder)
	}

	// Order routes shared by both parties
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.CreateOrder)
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.POST("/:id/receipt", r.orderHandler.ConfirmReceipt)
		orderGroup.POST("/:id/cancel", r.orderHandler.CancelOrder)
		orderGroup.POST("/:id/reviews", r.reviewHandler.CreateReview)
	}

	// Moderation routes that require the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.POST("/users/:id/ban", r.adminHandler.BanUser)
		adminGroup.POST("/users/:id/unban", r.adminHandler.UnbanUser)
		adminGroup.GET("/appeals", r.adminHandler.ListPendingAppeals)
		adminGroup.POST("/appeals/:id/resolve", r.adminHandler.ResolveAppeal)
	}
}

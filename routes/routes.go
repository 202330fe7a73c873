package routes

import (
	"github.com/sajibgoswami11/laundry-app-v2/handlers"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Shop browsing (approval-gated per caller role in the handler)
		auth.GET("/shops", handlers.ListShops)
		auth.GET("/shops/:id", handlers.GetShop)
		auth.GET("/shops/:id/services", handlers.GetShopServices)

		// Shop update: owning SHOP_OWNER or ADMIN, decided in the handler
		auth.PATCH("/shops/:id", handlers.UpdateShop)

		// Order lifecycle: owning customer, owning shop's owner, or ADMIN
		auth.PATCH("/orders/:id", handlers.UpdateOrder)
		auth.PUT("/orders/:id", handlers.UpdateOrder)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.Checkout)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id/detail", handlers.GetOrderDetail)
	}

	// ── Shop owner routes ──────────────────────────────────────────
	owner := r.Group("/api/shops")
	owner.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleShopOwner))
	{
		owner.GET("/my", handlers.GetMyShop)

		// Service catalog management
		owner.GET("/services", handlers.GetMyServices)
		owner.POST("/services", handlers.AddService)
		owner.PUT("/services/:serviceId", handlers.UpdateService)
		owner.DELETE("/services/:serviceId", handlers.DeleteService)

		// Incoming orders
		owner.GET("/orders", handlers.GetShopOrders)
	}

	// ── Admin routes ───────────────────────────────────────────────
	adminShops := r.Group("/api")
	adminShops.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		adminShops.POST("/shops", handlers.CreateShop)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/available-owners", handlers.GetAvailableOwners)
		admin.PATCH("/users/:id", handlers.UpdateUserRole)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/shops", handlers.AdminGetAllShops)
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
	}
}

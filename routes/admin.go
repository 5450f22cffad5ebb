package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/config"
	orderControllers "github.com/bdimon/warm-hat/controllers/order"
	productcontroller "github.com/bdimon/warm-hat/controllers/product"
	userControllers "github.com/bdimon/warm-hat/controllers/user"
	"github.com/bdimon/warm-hat/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(cfg.AdminAPIKey))
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PATCH("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PATCH("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// ─────────── User Management ───────────
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(db))
			userAdmin.GET("/:id", userControllers.GetUserByID(db))
			userAdmin.DELETE("/:id", userControllers.DeleteUser(db))
		}
	}
}

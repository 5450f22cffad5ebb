package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/cart"
	"github.com/bdimon/warm-hat/config"
	cartControllers "github.com/bdimon/warm-hat/controllers/cart"
	orderControllers "github.com/bdimon/warm-hat/controllers/order"
	paymentControllers "github.com/bdimon/warm-hat/controllers/payment"
	userControllers "github.com/bdimon/warm-hat/controllers/user"
	"github.com/bdimon/warm-hat/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Manager, gateway paymentControllers.SessionGateway, cfg config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/profile", userControllers.GetProfile(db))
		userGroup.PUT("/profile", userControllers.UpsertProfile(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(carts))
			cartGroup.POST("", cartControllers.AddCartItem(db, carts))
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItemQuantity(carts))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(carts))
			cartGroup.DELETE("", cartControllers.ClearUserCart(carts))
		}

		// ──────────────── Checkout & Orders ────────────────
		userGroup.POST("/orders", orderControllers.PlaceOrderHandler(db, carts, gateway))
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))

		// Clears the local cart state when the client signs out
		userGroup.POST("/signout", cartControllers.SignOut(carts))
	}
}

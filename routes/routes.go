package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/cart"
	"github.com/bdimon/warm-hat/config"
	paymentControllers "github.com/bdimon/warm-hat/controllers/payment"
)

// SetupRoutes is the single entry point that wires up the public, user,
// admin and payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Manager, gateway paymentControllers.SessionGateway, cfg config.Config) {
	// Public catalog routes (no middleware)
	SetupProductRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, carts, gateway, cfg)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, cfg)

	// Payment gateway routes
	SetupPaymentRoutes(r, db, gateway, cfg)
}

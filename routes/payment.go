package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/config"
	paymentControllers "github.com/bdimon/warm-hat/controllers/payment"
	"github.com/bdimon/warm-hat/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, gateway paymentControllers.SessionGateway, cfg config.Config) {
	payment := r.Group("/payments")
	{
		payment.POST("/create-checkout-session", paymentControllers.CreateSessionHandler(db, gateway))
		payment.GET("/check-status", paymentControllers.CheckStatusHandler(db, gateway))

		// Webhook endpoint: middleware verifies the gateway signature
		payment.POST("/webhook",
			middleware.StripeWebhookAuth(cfg.Stripe.WebhookSecret),
			paymentControllers.WebhookHandler(db),
		)
	}
}

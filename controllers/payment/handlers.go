package paymentControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

type createSessionInput struct {
	OrderID string `json:"orderId" binding:"required"`
	Lang    string `json:"lang"`
}

// POST /payments/create-checkout-session
// Creates a hosted checkout session for an existing order and records the
// session id on it. A gateway failure leaves the order as it was.
func CreateSessionHandler(db *gorm.DB, gateway SessionGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createSessionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", input.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		session, err := gateway.CreateCheckoutSession(c.Request.Context(), &order, localized.ParseLang(input.Lang))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"payment_intent": session.ID,
				"status":         models.OrderStatusPending,
			}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"sessionId": session.ID, "url": session.URL})
	}
}

// GET /payments/check-status?session_id=...
// Polled by the success page: retrieves the session and marks the order
// paid once the gateway reports the payment complete.
func CheckStatusHandler(db *gorm.DB, gateway SessionGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id parameter"})
			return
		}

		session, err := gateway.RetrieveSession(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		orderID := session.Metadata["order_id"]
		if session.PaymentStatus == "paid" && orderID != "" {
			if err := markOrderPaid(db, orderID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"paymentStatus": session.PaymentStatus,
			"orderId":       orderID,
		})
	}
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object CheckoutSession `json:"object"`
	} `json:"data"`
}

// POST /payments/webhook
// Signature verification happens in middleware; by the time this handler
// runs the payload is trusted.
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
			return
		}

		var event webhookEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
			return
		}

		if event.Type == "checkout.session.completed" {
			orderID := event.Data.Object.Metadata["order_id"]
			if orderID == "" {
				log.WithField("session_id", event.Data.Object.ID).Warn("webhook session without order_id metadata")
			} else if err := markOrderPaid(db, orderID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func markOrderPaid(db *gorm.DB, orderID string) error {
	return db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", models.OrderStatusPaid).Error
}

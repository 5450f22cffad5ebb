package orderControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/cart"
	"github.com/bdimon/warm-hat/checkout"
	paymentControllers "github.com/bdimon/warm-hat/controllers/payment"
	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

// -------- Request Structs --------

type placeOrderInput struct {
	checkout.Form
	Lang string `json:"lang"`
}

type updateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// -------- Helpers --------

// mapOrderStatus maps a client string to an order status. "created" is the
// legacy spelling of "new" and stays accepted.
func mapOrderStatus(status string) (models.OrderStatus, bool) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusNew), "created":
		return models.OrderStatusNew, true
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, true
	case string(models.OrderStatusPaid):
		return models.OrderStatusPaid, true
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, true
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, true
	default:
		return "", false
	}
}

// -------- Handlers --------

// POST /user/orders
// Checkout submission: validates the form against the user's cart, inserts
// the order and, for card payment, requests a hosted checkout session. The
// cart is cleared once the order row exists. A gateway failure leaves the
// pending order in place; there is no compensation step.
func PlaceOrderHandler(db *gorm.DB, carts *cart.Manager, gateway paymentControllers.SessionGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input placeOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Email == "" {
			input.Email = c.GetString("user_email")
		}
		lang := localized.ParseLang(input.Lang)

		store, err := carts.ForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		order, fieldErrs, err := checkout.Prepare(userID, input.Form, store.Items(), lang)
		if fieldErrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.Create(order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		store.Clear()
		broadcastNewOrder(*order)

		if order.PaymentMethod != checkout.PaymentMethodCard {
			c.JSON(http.StatusCreated, gin.H{"order": order})
			return
		}

		session, err := gateway.CreateCheckoutSession(c.Request.Context(), order, lang)
		if err != nil {
			log.WithError(err).WithField("order_id", order.ID).Error("checkout session creation failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "order_id": order.ID})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("payment_intent", session.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"order":     order,
			"sessionId": session.ID,
			"url":       session.URL,
		})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal.(string)).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PATCH /admin/orders/:orderID/status
// The status set is flat: the admin can move any order to any status.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var input updateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := mapOrderStatus(input.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		result := db.Where("id = ?", orderID).Delete(&models.Order{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

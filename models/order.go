package models

import (
	"time"

	"github.com/bdimon/warm-hat/localized"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"     // placed, awaiting handling (non-card payment)
	OrderStatusPending   OrderStatus = "pending" // card order waiting for the gateway
	OrderStatusPaid      OrderStatus = "paid"    // payment confirmed
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the checkout result: an immutable item snapshot plus the
// customer fields collected by the form. Status changes come from the
// admin panel or the payment webhook; no transition graph is enforced.
type Order struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	UserID          string      `gorm:"index" json:"user_id"`
	Items           OrderItems  `gorm:"type:jsonb;not null" json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'new'" json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentIntent   string      `json:"payment_intent,omitempty"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerAddress string      `json:"customer_address"`
	CustomerPhone   string      `json:"customer_phone"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem is one snapshot line. Name and price keep the scalar-or-map
// shape they had in the cart so the admin panel can render any language.
type OrderItem struct {
	ProductID string           `json:"id"`
	Name      localized.String `json:"name"`
	Quantity  int              `json:"quantity"`
	Price     localized.Amount `json:"price"` // effective price at submission time
	Images    []string         `json:"images,omitempty"`
}

type OrderItems []OrderItem

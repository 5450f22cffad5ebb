package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdimon/warm-hat/models"
)

func TestMapOrderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.OrderStatus
		ok   bool
	}{
		{"new", models.OrderStatusNew, true},
		{"created", models.OrderStatusNew, true}, // legacy spelling
		{"pending", models.OrderStatusPending, true},
		{"PAID", models.OrderStatusPaid, true},
		{"delivered", models.OrderStatusDelivered, true},
		{"cancelled", models.OrderStatusCancelled, true},
		{"shipped", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := mapOrderStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdimon/warm-hat/cart"
	paymentControllers "github.com/bdimon/warm-hat/controllers/payment"
	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

type memoryMirror struct {
	records map[string]models.CartItems
}

func (m *memoryMirror) Load(_ context.Context, userID string) (models.CartItems, error) {
	items, ok := m.records[userID]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return items, nil
}

func (m *memoryMirror) Save(_ context.Context, userID string, items models.CartItems) error {
	m.records[userID] = items
	return nil
}

// failGateway fails the test when the checkout flow reaches the gateway.
type failGateway struct {
	t *testing.T
}

func (g *failGateway) CreateCheckoutSession(context.Context, *models.Order, localized.Lang) (*paymentControllers.CheckoutSession, error) {
	g.t.Fatal("gateway must not be called for a rejected submission")
	return nil, nil
}

func (g *failGateway) RetrieveSession(context.Context, string) (*paymentControllers.CheckoutSession, error) {
	g.t.Fatal("gateway must not be called for a rejected submission")
	return nil, nil
}

// checkoutRouter wires the handler with a stubbed identity and no DB: the
// rejection paths under test must not touch either the DB or the gateway.
func checkoutRouter(t *testing.T, mirror cart.Mirror) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/orders", func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	}, PlaceOrderHandler(nil, cart.NewManager(mirror, 0), &failGateway{t: t}))
	return r
}

func postJSON(r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/user/orders", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderRejectsEmptyCartWithoutNetworkCall(t *testing.T) {
	r := checkoutRouter(t, &memoryMirror{records: map[string]models.CartItems{}})

	w := postJSON(r, gin.H{
		"name":    "Jane Doe",
		"address": "1 Main St",
		"phone":   "+12025550123",
		"email":   "jane@example.com",
		"payment": "card",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestPlaceOrderRejectsInvalidFieldsWithoutNetworkCall(t *testing.T) {
	mirror := &memoryMirror{records: map[string]models.CartItems{
		"u1": {{ProductID: "p1", Name: localized.NewString("hat"), Price: localized.NewAmount(10), Quantity: 1}},
	}}
	r := checkoutRouter(t, mirror)

	w := postJSON(r, gin.H{
		"name":    "",
		"address": "1 Main St",
		"phone":   "123",
		"email":   "jane@example.com",
		"payment": "card",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "phone")
	assert.NotContains(t, resp.Errors, "address")
}

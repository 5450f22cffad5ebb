package paymentControllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bdimon/warm-hat/config"
	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

// CheckoutSession is the slice of the gateway session the service uses.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// SessionGateway creates and inspects hosted checkout sessions. The order
// controller and the payment handlers depend on this interface so tests can
// substitute a fake.
type SessionGateway interface {
	CreateCheckoutSession(ctx context.Context, order *models.Order, lang localized.Lang) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// StripeClient talks to the hosted checkout API with form-encoded requests.
type StripeClient struct {
	secretKey string
	apiBase   string
	clientURL string
	currency  string
	http      *http.Client
}

func NewStripeClient(cfg config.Stripe, clientURL string) *StripeClient {
	return &StripeClient{
		secretKey: cfg.SecretKey,
		apiBase:   strings.TrimRight(cfg.APIBase, "/"),
		clientURL: strings.TrimRight(clientURL, "/"),
		currency:  "usd",
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckoutSession builds gateway line items from the order snapshot
// (names and prices resolved for lang, amounts in minor units) and returns
// the session the browser is redirected to. The order id travels in the
// session metadata so the webhook can find the order later.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, order *models.Order, lang localized.Lang) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", c.clientURL+"/payment-success?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", c.clientURL+"/cart")
	form.Set("metadata[order_id]", order.ID)

	for i, item := range order.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name.Resolve(lang))
		form.Set(prefix+"[price_data][unit_amount]", minorUnits(item.Price.Resolve(lang)))
		form.Set(prefix+"[quantity]", fmt.Sprintf("%d", item.Quantity))
	}

	return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form)
}

// RetrieveSession fetches a session for the status-check endpoint and the
// webhook fallback path.
func (c *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values) (*CheckoutSession, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reach payment gateway")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("gateway error (%d): %s", resp.StatusCode, gatewayErrorMessage(raw))
	}

	var session CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "failed to parse gateway response")
	}
	if session.ID == "" {
		return nil, errors.New("gateway returned an empty session id")
	}
	return &session, nil
}

func gatewayErrorMessage(raw []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return string(raw)
}

// minorUnits converts a major-unit price to the gateway's integer cents.
func minorUnits(amount float64) string {
	cents := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0)
	return cents.String()
}

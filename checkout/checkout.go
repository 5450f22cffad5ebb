// Package checkout turns a validated form plus the current cart into an
// order record. It is deliberately free of DB and gateway calls: a rejected
// submission never touches the network.
package checkout

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// ErrEmptyCart rejects a submission before any network call is made.
var ErrEmptyCart = errors.New("cart is empty")

var (
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Form carries the shipping/contact fields collected at checkout.
type Form struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Payment string `json:"payment"`
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Validate checks the required fields and returns per-field messages.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "address is required"
	}
	if !phonePattern.MatchString(f.Phone) {
		errs["phone"] = "invalid phone number"
	}
	if !emailPattern.MatchString(f.Email) {
		errs["email"] = "invalid email address"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Prepare validates the form and builds the order: item snapshot with the
// effective price (sale price when on sale), and the total as the sum of
// price x quantity over the snapshot. It performs no I/O.
func Prepare(userID string, form Form, items models.CartItems, lang localized.Lang) (*models.Order, FieldErrors, error) {
	if fieldErrs := form.Validate(); fieldErrs != nil {
		return nil, fieldErrs, nil
	}
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	payment := form.Payment
	if payment == "" {
		payment = PaymentMethodCard
	}

	snapshot := make(models.OrderItems, 0, len(items))
	for _, item := range items {
		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.EffectivePrice(),
			Images:    item.Images,
		})
	}

	status := models.OrderStatusNew
	if payment == PaymentMethodCard {
		status = models.OrderStatusPending
	}

	return &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           snapshot,
		Total:           Total(snapshot, lang),
		Status:          status,
		PaymentMethod:   payment,
		CustomerName:    strings.TrimSpace(form.Name),
		CustomerEmail:   strings.TrimSpace(form.Email),
		CustomerAddress: strings.TrimSpace(form.Address),
		CustomerPhone:   form.Phone,
		CreatedAt:       time.Now(),
	}, nil, nil
}

// Total sums snapshot price x quantity, resolved for the given language.
func Total(items models.OrderItems, lang localized.Lang) float64 {
	sum := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price.Resolve(lang))
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	f, _ := sum.Float64()
	return f
}

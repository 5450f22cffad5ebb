package models

import (
	"time"

	"github.com/bdimon/warm-hat/localized"
)

// Cart mirrors one user's in-memory cart as a single row. Every save
// replaces the whole item list; there is no per-line reconciliation.
type Cart struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Items     CartItems `gorm:"type:jsonb;not null" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ProductID string            `json:"id"`
	Name      localized.String  `json:"name"`
	Price     localized.Amount  `json:"price"`
	Quantity  int               `json:"quantity"`
	IsSale    bool              `json:"isSale,omitempty"`
	SalePrice *localized.Amount `json:"salePrice,omitempty"`
	Images    []string          `json:"images,omitempty"`
}

type CartItems []CartItem

// EffectivePrice is the amount the line is charged at: the sale price when
// the item is on sale and one is set, the base price otherwise.
func (i CartItem) EffectivePrice() localized.Amount {
	if i.IsSale && i.SalePrice != nil {
		return *i.SalePrice
	}
	return i.Price
}

package models

import (
	"time"

	"github.com/bdimon/warm-hat/localized"
)

type Product struct {
	ID          string            `gorm:"primaryKey" json:"id"`
	Name        localized.String  `gorm:"type:jsonb;not null" json:"name"`
	Description string            `json:"description,omitempty"`
	Price       localized.Amount  `gorm:"type:jsonb;not null" json:"price"`
	SalePrice   *localized.Amount `gorm:"type:jsonb" json:"salePrice,omitempty"`
	Quantity    int               `json:"quantity"`
	Category    string            `gorm:"index" json:"category"`
	Images      StringList        `gorm:"type:jsonb" json:"images"`
	IsNew       bool              `json:"isNew"`
	IsSale      bool              `json:"isSale"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Validate enforces the "en" fallback invariant on map-shaped fields.
func (p Product) Validate() error {
	if err := p.Name.Validate(); err != nil {
		return err
	}
	if err := p.Price.Validate(); err != nil {
		return err
	}
	if p.SalePrice != nil {
		return p.SalePrice.Validate()
	}
	return nil
}

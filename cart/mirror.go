package cart

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bdimon/warm-hat/models"
)

// GormMirror stores carts in the carts table, one row per user.
type GormMirror struct {
	db *gorm.DB
}

func NewGormMirror(db *gorm.DB) *GormMirror {
	return &GormMirror{db: db}
}

func (m *GormMirror) Load(ctx context.Context, userID string) (models.CartItems, error) {
	var record models.Cart
	err := m.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.Items, nil
}

// Save upserts the user's row with the full item list.
func (m *GormMirror) Save(ctx context.Context, userID string, items models.CartItems) error {
	record := models.Cart{UserID: userID, Items: items}
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
		}).
		Create(&record).Error
}

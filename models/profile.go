package models

import "time"

// Profile holds the shipping details a user keeps on file. The ID is the
// auth identity id, so each identity has at most one profile row.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the per-account contact card. ID matches the identity user id;
// the row is created on first sign-up.
type Profile struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	UserName  *string   `gorm:"column:user_name" json:"user_name,omitempty"`
	StoreName *string   `gorm:"column:store_name" json:"store_name,omitempty"`
	Address   *string   `gorm:"column:address" json:"address,omitempty"`
	Phone     *string   `gorm:"column:phone" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
)

// StoreUser links a user with a store and captures their role/status. A user
// may belong to multiple stores with a different role per store.
type StoreUser struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID   uuid.UUID              `gorm:"column:store_id;type:uuid;not null" json:"store_id"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	Role      enums.MemberRole       `gorm:"column:role;type:member_role;not null" json:"role"`
	Status    enums.MembershipStatus `gorm:"column:status;type:membership_status;not null;default:'enabled'" json:"status"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

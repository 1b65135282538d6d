package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
)

// Store is a tenant/location node. ParentStoreID forms a tree; one level of
// nesting is the observed shape.
type Store struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string            `gorm:"column:name;not null" json:"name"`
	ParentStoreID *uuid.UUID        `gorm:"column:parent_store_id;type:uuid" json:"parent_store_id,omitempty"`
	Address       *string           `gorm:"column:address" json:"address,omitempty"`
	Phone         *string           `gorm:"column:phone" json:"phone,omitempty"`
	Status        enums.StoreStatus `gorm:"column:status;type:store_status;not null;default:'active'" json:"status"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
)

// Order is a submitted purchase request. TotalAmount is the sum of the line
// subtotals at creation time and is never recomputed after that, even when
// catalog prices change.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	StoreID     *uuid.UUID        `gorm:"column:store_id;type:uuid" json:"store_id,omitempty"`
	Status      enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'" json:"status"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Notes       *string           `gorm:"column:notes" json:"notes,omitempty"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	"github.com/oakhollow/orderdesk-backend/pkg/types"
)

// Product represents a sellable catalog entry. A product may be a variant of
// another via ParentProductID; the hierarchy is two levels by convention and
// not enforced here.
type Product struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string             `gorm:"column:name;not null" json:"name"`
	Brand           *string            `gorm:"column:brand" json:"brand,omitempty"`
	Series          *string            `gorm:"column:series" json:"series,omitempty"`
	Model           *string            `gorm:"column:model" json:"model,omitempty"`
	Color           *string            `gorm:"column:color" json:"color,omitempty"`
	Barcode         *string            `gorm:"column:barcode" json:"barcode,omitempty"`
	Description     *string            `gorm:"column:description" json:"description,omitempty"`
	Price           decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	RetailPrice     *decimal.Decimal   `gorm:"column:retail_price;type:numeric(12,2)" json:"retail_price,omitempty"`
	DealerPrice     *decimal.Decimal   `gorm:"column:dealer_price;type:numeric(12,2)" json:"dealer_price,omitempty"`
	Unit            string             `gorm:"column:unit;not null;default:'piece'" json:"unit"`
	Stock           int                `gorm:"column:stock;not null;default:0" json:"stock"`
	Status          enums.ProductStatus `gorm:"column:status;type:product_status;not null;default:'active'" json:"status"`
	Category        *string            `gorm:"column:category" json:"category,omitempty"`
	ParentProductID *uuid.UUID         `gorm:"column:parent_product_id;type:uuid" json:"parent_product_id,omitempty"`
	TableSettings   types.VariantAxes  `gorm:"column:table_settings;type:jsonb;serializer:json" json:"table_settings,omitempty"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

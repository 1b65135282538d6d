package products

import (
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	"github.com/oakhollow/orderdesk-backend/pkg/types"
)

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	Brand         *string
	Series        *string
	Model         *string
	Color         *string
	Barcode       *string
	Description   *string
	Price         decimal.Decimal
	RetailPrice   *decimal.Decimal
	DealerPrice   *decimal.Decimal
	Unit          string
	Stock         int
	Status        enums.ProductStatus
	Category      *string
	TableSettings types.VariantAxes
}

// UpdateProductInput holds optional mutation values; nil fields are left
// untouched.
type UpdateProductInput struct {
	Name          *string
	Brand         *string
	Series        *string
	Model         *string
	Color         *string
	Barcode       *string
	Description   *string
	Price         *decimal.Decimal
	RetailPrice   *decimal.Decimal
	DealerPrice   *decimal.Decimal
	Unit          *string
	Stock         *int
	Status        *enums.ProductStatus
	Category      *string
	TableSettings *types.VariantAxes
}

// ListFilter narrows product listings.
type ListFilter struct {
	Status   *enums.ProductStatus
	Category *string
	Search   string
}

// CreateProductRequest is the HTTP payload for creating a product.
type CreateProductRequest struct {
	Name          string            `json:"name" validate:"required,max=255"`
	Brand         *string           `json:"brand" validate:"omitempty,max=255"`
	Series        *string           `json:"series" validate:"omitempty,max=255"`
	Model         *string           `json:"model" validate:"omitempty,max=255"`
	Color         *string           `json:"color" validate:"omitempty,max=255"`
	Barcode       *string           `json:"barcode" validate:"omitempty,max=64"`
	Description   *string           `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	RetailPrice   *decimal.Decimal  `json:"retail_price"`
	DealerPrice   *decimal.Decimal  `json:"dealer_price"`
	Unit          string            `json:"unit" validate:"omitempty,max=32"`
	Stock         int               `json:"stock" validate:"gte=0"`
	Status        string            `json:"status" validate:"omitempty"`
	Category      *string           `json:"category" validate:"omitempty,max=255"`
	TableSettings types.VariantAxes `json:"table_settings"`
}

// UpdateProductRequest is the HTTP payload for partial product updates.
type UpdateProductRequest struct {
	Name          *string            `json:"name" validate:"omitempty,max=255"`
	Brand         *string            `json:"brand" validate:"omitempty,max=255"`
	Series        *string            `json:"series" validate:"omitempty,max=255"`
	Model         *string            `json:"model" validate:"omitempty,max=255"`
	Color         *string            `json:"color" validate:"omitempty,max=255"`
	Barcode       *string            `json:"barcode" validate:"omitempty,max=64"`
	Description   *string            `json:"description"`
	Price         *decimal.Decimal   `json:"price"`
	RetailPrice   *decimal.Decimal   `json:"retail_price"`
	DealerPrice   *decimal.Decimal   `json:"dealer_price"`
	Unit          *string            `json:"unit" validate:"omitempty,max=32"`
	Stock         *int               `json:"stock" validate:"omitempty,gte=0"`
	Status        *string            `json:"status"`
	Category      *string            `json:"category" validate:"omitempty,max=255"`
	TableSettings *types.VariantAxes `json:"table_settings"`
}

// StatusRequest is the HTTP payload for changing a product's status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

package enums

import "fmt"

// ProductStatus represents the canonical product_status enum in Postgres.
// The storefront labels these 上架中 / 售完停產 / 預購中 / 停產.
type ProductStatus string

const (
	ProductStatusActive                  ProductStatus = "active"
	ProductStatusDiscontinuedOutOfStock  ProductStatus = "discontinued_out_of_stock"
	ProductStatusPreorder                ProductStatus = "preorder"
	ProductStatusDiscontinued            ProductStatus = "discontinued"
)

var validProductStatuses = []ProductStatus{
	ProductStatusActive,
	ProductStatusDiscontinuedOutOfStock,
	ProductStatusPreorder,
	ProductStatusDiscontinued,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

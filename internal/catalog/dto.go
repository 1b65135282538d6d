package catalog

import (
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
)

// BrowseQuery carries the storefront search inputs.
type BrowseQuery struct {
	FreeText string
	Facets   Facets
}

// FacetPanel holds the value counts backing the advanced-search dropdowns.
// Each dimension is counted against the candidates left by the OTHER
// dimensions, so picking a brand never zeroes out the brand list itself.
type FacetPanel struct {
	Brands []FacetCount `json:"brands"`
	Models []FacetCount `json:"models"`
	Series []FacetCount `json:"series"`
	Colors []FacetCount `json:"colors"`
}

// BrowseResult is the storefront listing payload.
type BrowseResult struct {
	Products []models.Product `json:"products"`
	Facets   FacetPanel       `json:"facets"`
	Total    int              `json:"total"`
}

// MatrixView is the serializable form of an ordering grid. Cells is rows ×
// cols with null for unassigned coordinates; zero-column grids carry one
// cell per row.
type MatrixView struct {
	Title string              `json:"title"`
	Rows  []string            `json:"rows"`
	Cols  []string            `json:"cols"`
	Cells [][]*models.Product `json:"cells"`
}

package types

import (
	"strings"

	"github.com/google/uuid"
)

// VariantAxis places a product in one named ordering grid at one coordinate.
// An empty TableTitle makes the axis immaterial; empty row/col titles denote
// a one-dimensional grid.
type VariantAxis struct {
	ID            uuid.UUID `json:"id"`
	TableTitle    string    `json:"table_title"`
	TableRowTitle string    `json:"table_row_title"`
	TableColTitle string    `json:"table_col_title"`
}

// Material reports whether the axis carries a usable grid assignment.
func (a VariantAxis) Material() bool {
	return strings.TrimSpace(a.TableTitle) != ""
}

// VariantAxes is the ordered table_settings list persisted as JSONB.
type VariantAxes []VariantAxis

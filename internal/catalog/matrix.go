package catalog

import (
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
)

// Matrix is one named ordering grid assembled from product table_settings.
// Rows and Cols hold the unique labels in first-seen order, which mirrors the
// sequence administrators entered them in.
type Matrix struct {
	Title string   `json:"title"`
	Rows  []string `json:"rows"`
	Cols  []string `json:"cols"`

	cells map[cellKey]*models.Product
}

type cellKey struct {
	row string
	col string
}

// Cell returns the product registered at (row, col), or nil when the cell is
// empty. A matrix with zero columns is list-like: each row maps to at most
// one product and the col argument is ignored.
func (m *Matrix) Cell(row, col string) *models.Product {
	if m == nil {
		return nil
	}
	if len(m.Cols) == 0 {
		col = ""
	}
	return m.cells[cellKey{row: row, col: col}]
}

// BuildMatrices expands every product's table_settings and groups the entries
// by table title. Products without a material axis are excluded; they are
// sold through the flat list view instead. When two entries claim the same
// (title, row, col) coordinate the last registered one wins.
func BuildMatrices(products []models.Product) []*Matrix {
	order := []string{}
	byTitle := map[string]*Matrix{}

	for i := range products {
		product := &products[i]
		for _, axis := range product.TableSettings {
			if !axis.Material() {
				continue
			}

			matrix, ok := byTitle[axis.TableTitle]
			if !ok {
				matrix = &Matrix{
					Title: axis.TableTitle,
					cells: map[cellKey]*models.Product{},
				}
				byTitle[axis.TableTitle] = matrix
				order = append(order, axis.TableTitle)
			}

			if axis.TableRowTitle != "" && !contains(matrix.Rows, axis.TableRowTitle) {
				matrix.Rows = append(matrix.Rows, axis.TableRowTitle)
			}
			if axis.TableColTitle != "" && !contains(matrix.Cols, axis.TableColTitle) {
				matrix.Cols = append(matrix.Cols, axis.TableColTitle)
			}

			matrix.cells[cellKey{row: axis.TableRowTitle, col: axis.TableColTitle}] = product
		}
	}

	result := make([]*Matrix, 0, len(order))
	for _, title := range order {
		result = append(result, byTitle[title])
	}
	return result
}

// Grid materializes the lookup as rows × cols of cell products, with nil for
// empty cells. Zero-column matrices yield one cell per row.
func (m *Matrix) Grid() [][]*models.Product {
	if m == nil {
		return nil
	}
	grid := make([][]*models.Product, len(m.Rows))
	for i, row := range m.Rows {
		if len(m.Cols) == 0 {
			grid[i] = []*models.Product{m.Cell(row, "")}
			continue
		}
		grid[i] = make([]*models.Product, len(m.Cols))
		for j, col := range m.Cols {
			grid[i][j] = m.Cell(row, col)
		}
	}
	return grid
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/types"
)

func axisProduct(name string, axes ...types.VariantAxis) models.Product {
	return models.Product{ID: uuid.New(), Name: name, TableSettings: axes}
}

func axis(table, row, col string) types.VariantAxis {
	return types.VariantAxis{ID: uuid.New(), TableTitle: table, TableRowTitle: row, TableColTitle: col}
}

func TestBuildMatricesGroupsByTitleInFirstSeenOrder(t *testing.T) {
	products := []models.Product{
		axisProduct("red-s", axis("tees", "red", "S")),
		axisProduct("hat", axis("hats", "wool", "")),
		axisProduct("red-m", axis("tees", "red", "M")),
		axisProduct("blue-s", axis("tees", "blue", "S")),
	}

	matrices := BuildMatrices(products)
	if len(matrices) != 2 {
		t.Fatalf("expected 2 matrices, got %d", len(matrices))
	}
	if matrices[0].Title != "tees" || matrices[1].Title != "hats" {
		t.Fatalf("titles must keep first-seen order: %s, %s", matrices[0].Title, matrices[1].Title)
	}

	tees := matrices[0]
	if len(tees.Rows) != 2 || tees.Rows[0] != "red" || tees.Rows[1] != "blue" {
		t.Fatalf("rows must keep first-seen order: %v", tees.Rows)
	}
	if len(tees.Cols) != 2 || tees.Cols[0] != "S" || tees.Cols[1] != "M" {
		t.Fatalf("cols must keep first-seen order: %v", tees.Cols)
	}

	if got := tees.Cell("red", "M"); got == nil || got.Name != "red-m" {
		t.Fatalf("expected red-m at (red, M), got %v", got)
	}
	if got := tees.Cell("blue", "M"); got != nil {
		t.Fatalf("expected empty cell at (blue, M), got %v", got)
	}
}

func TestBuildMatricesSkipsImmaterialAxes(t *testing.T) {
	products := []models.Product{
		axisProduct("untabled", axis("  ", "row", "col")),
		axisProduct("plain"),
	}
	if got := BuildMatrices(products); len(got) != 0 {
		t.Fatalf("blank table titles must not create a matrix, got %d", len(got))
	}
}

func TestBuildMatricesLastRegistrationWins(t *testing.T) {
	products := []models.Product{
		axisProduct("first", axis("tees", "red", "S")),
		axisProduct("second", axis("tees", "red", "S")),
	}
	matrices := BuildMatrices(products)
	if len(matrices) != 1 {
		t.Fatalf("expected 1 matrix, got %d", len(matrices))
	}
	if got := matrices[0].Cell("red", "S"); got == nil || got.Name != "second" {
		t.Fatalf("expected last registration to win, got %v", got)
	}
}

func TestMatrixZeroColumnsIsListLike(t *testing.T) {
	products := []models.Product{
		axisProduct("wool", axis("hats", "wool", "")),
		axisProduct("straw", axis("hats", "straw", "")),
	}
	matrices := BuildMatrices(products)
	if len(matrices) != 1 {
		t.Fatalf("expected 1 matrix, got %d", len(matrices))
	}

	hats := matrices[0]
	if len(hats.Cols) != 0 {
		t.Fatalf("expected no columns, got %v", hats.Cols)
	}
	// Col argument is ignored for list-like grids.
	if got := hats.Cell("wool", "anything"); got == nil || got.Name != "wool" {
		t.Fatalf("expected wool row, got %v", got)
	}

	grid := hats.Grid()
	if len(grid) != 2 || len(grid[0]) != 1 {
		t.Fatalf("expected 2×1 grid, got %v", grid)
	}
	if grid[1][0] == nil || grid[1][0].Name != "straw" {
		t.Fatalf("expected straw at second row, got %v", grid[1][0])
	}
}

func TestMatrixProductOnMultipleGrids(t *testing.T) {
	shared := axisProduct("combo", axis("tees", "red", "S"), axis("hats", "combo", ""))
	matrices := BuildMatrices([]models.Product{shared})
	if len(matrices) != 2 {
		t.Fatalf("expected the product on both grids, got %d", len(matrices))
	}
}

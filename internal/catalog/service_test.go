package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	"github.com/oakhollow/orderdesk-backend/pkg/types"
)

type stubSource struct {
	rows  []models.Product
	reads int
}

func (s *stubSource) FindAll(context.Context) ([]models.Product, error) {
	s.reads++
	return s.rows, nil
}

type stubCache struct {
	rows   []models.Product
	filled bool
}

func (c *stubCache) Load(context.Context) ([]models.Product, bool, error) {
	if !c.filled {
		return nil, false, nil
	}
	return c.rows, true, nil
}

func (c *stubCache) Store(_ context.Context, rows []models.Product) error {
	c.rows = rows
	c.filled = true
	return nil
}

func TestBrowseExcludesDiscontinued(t *testing.T) {
	source := &stubSource{rows: []models.Product{
		{ID: uuid.New(), Name: "live", Status: enums.ProductStatusActive},
		{ID: uuid.New(), Name: "preorder", Status: enums.ProductStatusPreorder},
		{ID: uuid.New(), Name: "sold out", Status: enums.ProductStatusDiscontinuedOutOfStock},
		{ID: uuid.New(), Name: "gone", Status: enums.ProductStatusDiscontinued},
	}}
	svc, err := NewService(source, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Browse(context.Background(), BrowseQuery{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected 3 storefront products, got %d", result.Total)
	}
	for _, p := range result.Products {
		if p.Status == enums.ProductStatusDiscontinued {
			t.Fatal("discontinued products must not reach the storefront")
		}
	}
}

func TestBrowseFillsAndReusesCache(t *testing.T) {
	source := &stubSource{rows: []models.Product{
		{ID: uuid.New(), Name: "live", Status: enums.ProductStatusActive},
	}}
	cache := &stubCache{}
	svc, err := NewService(source, cache, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Browse(context.Background(), BrowseQuery{}); err != nil {
		t.Fatalf("first Browse: %v", err)
	}
	if !cache.filled {
		t.Fatal("miss must refill the snapshot")
	}
	if _, err := svc.Browse(context.Background(), BrowseQuery{}); err != nil {
		t.Fatalf("second Browse: %v", err)
	}
	if source.reads != 1 {
		t.Fatalf("expected a single database read, got %d", source.reads)
	}
}

func TestMatricesUsesFilteredListing(t *testing.T) {
	samsung := "Samsung"
	apple := "Apple"
	source := &stubSource{rows: []models.Product{
		{ID: uuid.New(), Name: "s-tee", Brand: &samsung, Status: enums.ProductStatusActive,
			TableSettings: types.VariantAxes{{ID: uuid.New(), TableTitle: "tees", TableRowTitle: "red", TableColTitle: "S"}}},
		{ID: uuid.New(), Name: "a-tee", Brand: &apple, Status: enums.ProductStatusActive,
			TableSettings: types.VariantAxes{{ID: uuid.New(), TableTitle: "tees", TableRowTitle: "red", TableColTitle: "M"}}},
	}}
	svc, err := NewService(source, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	views, err := svc.Matrices(context.Background(), BrowseQuery{Facets: Facets{Brands: []string{"Samsung"}}})
	if err != nil {
		t.Fatalf("Matrices: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 grid, got %d", len(views))
	}
	if len(views[0].Cols) != 1 || views[0].Cols[0] != "S" {
		t.Fatalf("filtered-out products must not contribute cells: %v", views[0].Cols)
	}
}

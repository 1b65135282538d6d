package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
)

func strptr(s string) *string { return &s }

func catalogFixture() []models.Product {
	return []models.Product{
		{ID: uuid.New(), Name: "Galaxy S25", Brand: strptr("Samsung"), Series: strptr("Galaxy"), Model: strptr("S25"), Color: strptr("Black")},
		{ID: uuid.New(), Name: "Galaxy S25", Brand: strptr("Samsung"), Series: strptr("Galaxy"), Model: strptr("S25"), Color: strptr("Blue")},
		{ID: uuid.New(), Name: "Pixel 10", Brand: strptr("Google"), Series: strptr("Pixel"), Model: strptr("10"), Color: strptr("Black")},
		{ID: uuid.New(), Name: "iPhone 17", Brand: strptr("Apple"), Series: strptr("iPhone"), Model: strptr("17"), Color: strptr("White"), Barcode: strptr("4710000000017")},
	}
}

func TestFilterFreeTextMatchesAcrossFields(t *testing.T) {
	catalog := catalogFixture()

	got := Filter(catalog, Facets{}, "galaxy")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	got = Filter(catalog, Facets{}, "4710000000017")
	if len(got) != 1 || got[0].Name != "iPhone 17" {
		t.Fatalf("expected barcode match, got %v", got)
	}

	got = Filter(catalog, Facets{}, "  GALAXY  ")
	if len(got) != 2 {
		t.Fatal("matching must be case-insensitive and trim whitespace")
	}
}

func TestFilterFacetsAreConjunctive(t *testing.T) {
	catalog := catalogFixture()

	got := Filter(catalog, Facets{Brands: []string{"Samsung"}, Colors: []string{"Blue"}}, "")
	if len(got) != 1 {
		t.Fatalf("expected single match, got %d", len(got))
	}
	if got[0].Color == nil || *got[0].Color != "Blue" {
		t.Fatalf("expected blue Samsung, got %v", got[0])
	}
}

func TestFilterIsIdempotentAndOrderPreserving(t *testing.T) {
	catalog := catalogFixture()
	facets := Facets{Brands: []string{"Samsung"}}

	once := Filter(catalog, facets, "")
	twice := Filter(once, facets, "")
	if len(once) != len(twice) {
		t.Fatalf("refiltering changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatal("refiltering must preserve order and content")
		}
	}
	if once[0].ID != catalog[0].ID {
		t.Fatal("filtered output must preserve catalog order")
	}
}

func TestFilterEmptyCatalog(t *testing.T) {
	if got := Filter(nil, Facets{Brands: []string{"Samsung"}}, "phone"); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestFacetCountsExcludeOwnDimension(t *testing.T) {
	catalog := catalogFixture()
	facets := Facets{Brands: []string{"Samsung"}}

	// Brand counts ignore the brand selection so other brands stay pickable.
	brands := FacetCounts(catalog, facets, FacetBrand, "")
	if len(brands) != 3 {
		t.Fatalf("expected 3 brand values, got %d", len(brands))
	}
	if brands[0].Value != "Samsung" || brands[0].Count != 2 {
		t.Fatalf("expected Samsung×2 first, got %+v", brands[0])
	}

	// Color counts do honor the brand selection.
	colors := FacetCounts(catalog, facets, FacetColor, "")
	if len(colors) != 2 {
		t.Fatalf("expected 2 color values under Samsung, got %d", len(colors))
	}
	for _, c := range colors {
		if c.Count != 1 {
			t.Fatalf("expected one product per color, got %+v", c)
		}
	}
}

func TestFacetCountsSkipMissingValues(t *testing.T) {
	catalog := []models.Product{
		{ID: uuid.New(), Name: "bare"},
		{ID: uuid.New(), Name: "branded", Brand: strptr("Acme")},
	}
	counts := FacetCounts(catalog, Facets{}, FacetBrand, "")
	if len(counts) != 1 || counts[0].Value != "Acme" {
		t.Fatalf("products without the field must not produce a bucket: %v", counts)
	}
}

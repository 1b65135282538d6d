package catalog

import (
	"context"
	"fmt"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
)

// ProductSource reads the full catalog from persistence.
type ProductSource interface {
	FindAll(ctx context.Context) ([]models.Product, error)
}

// SnapshotCache fronts the product source with a shared Redis snapshot.
type SnapshotCache interface {
	Load(ctx context.Context) ([]models.Product, bool, error)
	Store(ctx context.Context, rows []models.Product) error
}

// Service exposes the storefront read operations.
type Service interface {
	Browse(ctx context.Context, query BrowseQuery) (*BrowseResult, error)
	Matrices(ctx context.Context, query BrowseQuery) ([]MatrixView, error)
}

type service struct {
	source ProductSource
	cache  SnapshotCache
	logg   *logger.Logger
}

// NewService builds the catalog read service. The cache is optional; without
// it every browse hits the database.
func NewService(source ProductSource, cache SnapshotCache, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("product source required")
	}
	return &service{source: source, cache: cache, logg: logg}, nil
}

// Browse returns the filtered storefront listing plus the facet panel.
func (s *service) Browse(ctx context.Context, query BrowseQuery) (*BrowseResult, error) {
	catalog, err := s.storefrontCatalog(ctx)
	if err != nil {
		return nil, err
	}

	products := Filter(catalog, query.Facets, query.FreeText)
	return &BrowseResult{
		Products: products,
		Total:    len(products),
		Facets: FacetPanel{
			Brands: FacetCounts(catalog, query.Facets, FacetBrand, query.FreeText),
			Models: FacetCounts(catalog, query.Facets, FacetModel, query.FreeText),
			Series: FacetCounts(catalog, query.Facets, FacetSeries, query.FreeText),
			Colors: FacetCounts(catalog, query.Facets, FacetColor, query.FreeText),
		},
	}, nil
}

// Matrices returns the ordering grids assembled from the filtered listing.
func (s *service) Matrices(ctx context.Context, query BrowseQuery) ([]MatrixView, error) {
	catalog, err := s.storefrontCatalog(ctx)
	if err != nil {
		return nil, err
	}

	products := Filter(catalog, query.Facets, query.FreeText)
	matrices := BuildMatrices(products)
	views := make([]MatrixView, 0, len(matrices))
	for _, m := range matrices {
		views = append(views, MatrixView{
			Title: m.Title,
			Rows:  m.Rows,
			Cols:  m.Cols,
			Cells: m.Grid(),
		})
	}
	return views, nil
}

// storefrontCatalog returns the sellable product list, refilling the shared
// snapshot on a miss. Discontinued products stay out of the storefront but
// remain visible through the admin listing.
func (s *service) storefrontCatalog(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		rows, hit, err := s.cache.Load(ctx)
		if err == nil && hit {
			return storefrontOnly(rows), nil
		}
		if err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache read failed")
		}
	}

	rows, err := s.source.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Store(ctx, rows); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache refill failed")
		}
	}
	return storefrontOnly(rows), nil
}

func storefrontOnly(rows []models.Product) []models.Product {
	out := make([]models.Product, 0, len(rows))
	for _, p := range rows {
		if p.Status == enums.ProductStatusDiscontinued {
			continue
		}
		out = append(out, p)
	}
	return out
}

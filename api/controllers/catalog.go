package controllers

import (
	"net/http"
	"strings"

	"github.com/oakhollow/orderdesk-backend/api/responses"
	"github.com/oakhollow/orderdesk-backend/api/validators"
	catalogsvc "github.com/oakhollow/orderdesk-backend/internal/catalog"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
)

func browseQueryFromRequest(r *http.Request) catalogsvc.BrowseQuery {
	return catalogsvc.BrowseQuery{
		FreeText: strings.TrimSpace(r.URL.Query().Get("q")),
		Facets: catalogsvc.Facets{
			Brands: validators.ParseQueryCSV(r, "brands"),
			Models: validators.ParseQueryCSV(r, "models"),
			Series: validators.ParseQueryCSV(r, "series"),
			Colors: validators.ParseQueryCSV(r, "colors"),
		},
	}
}

// CatalogBrowse serves the storefront listing with facet counts.
func CatalogBrowse(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		result, err := svc.Browse(r.Context(), browseQueryFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CatalogFacets serves just the facet counts for the current filter, for
// clients refreshing the dropdowns without reloading the listing.
func CatalogFacets(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		result, err := svc.Browse(r.Context(), browseQueryFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result.Facets)
	}
}

// CatalogMatrices serves the variant ordering grids for the current filter.
func CatalogMatrices(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		views, err := svc.Matrices(r.Context(), browseQueryFromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

package catalog

import (
	"sort"
	"strings"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
)

// Facet identifies one of the four advanced-search dimensions.
type Facet string

const (
	FacetBrand  Facet = "brand"
	FacetModel  Facet = "model"
	FacetSeries Facet = "series"
	FacetColor  Facet = "color"
)

// Facets holds the selected values per facet. An empty slice means the facet
// places no constraint.
type Facets struct {
	Brands []string `json:"brands,omitempty"`
	Models []string `json:"models,omitempty"`
	Series []string `json:"series,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// FacetCount pairs a facet value with how many remaining candidates carry it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Filter reduces the catalog to products matching the free-text query and
// every non-empty facet selection. The result preserves catalog order and is
// idempotent: filtering an already-filtered list is a no-op.
func Filter(catalog []models.Product, facets Facets, freeText string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(freeText))

	matched := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if !matchesText(p, needle) {
			continue
		}
		if !matchesFacets(p, facets) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// FacetCounts returns the option list for the excluded facet, counted against
// the catalog narrowed by the free text and every OTHER facet. Selecting a
// value therefore never shrinks its own facet's option list, only the other
// three. Counts sort descending; ties keep encounter order.
func FacetCounts(catalog []models.Product, facets Facets, exclude Facet, freeText string) []FacetCount {
	narrowed := Filter(catalog, withoutFacet(facets, exclude), freeText)

	order := []string{}
	counts := map[string]int{}
	for _, p := range narrowed {
		value := facetValue(p, exclude)
		if value == "" {
			continue
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	result := make([]FacetCount, 0, len(order))
	for _, value := range order {
		result = append(result, FacetCount{Value: value, Count: counts[value]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func matchesText(p models.Product, needle string) bool {
	if needle == "" {
		return true
	}
	haystacks := []string{
		p.Name,
		deref(p.Brand),
		deref(p.Series),
		deref(p.Model),
		deref(p.Color),
		deref(p.Barcode),
	}
	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func matchesFacets(p models.Product, facets Facets) bool {
	return memberOf(deref(p.Brand), facets.Brands) &&
		memberOf(deref(p.Model), facets.Models) &&
		memberOf(deref(p.Series), facets.Series) &&
		memberOf(deref(p.Color), facets.Colors)
}

func memberOf(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

func withoutFacet(facets Facets, exclude Facet) Facets {
	switch exclude {
	case FacetBrand:
		facets.Brands = nil
	case FacetModel:
		facets.Models = nil
	case FacetSeries:
		facets.Series = nil
	case FacetColor:
		facets.Colors = nil
	}
	return facets
}

func facetValue(p models.Product, facet Facet) string {
	switch facet {
	case FacetBrand:
		return deref(p.Brand)
	case FacetModel:
		return deref(p.Model)
	case FacetSeries:
		return deref(p.Series)
	case FacetColor:
		return deref(p.Color)
	default:
		return ""
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

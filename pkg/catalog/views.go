package catalog

import (
	"sort"
	"strings"

	"github.com/example/trendyshop/pkg/models"
)

// Sort keys accepted by the shop and admin listings.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortStockAsc  = "stock-asc"
	SortNameAsc   = "name-asc"
)

// Search filters by case-insensitive substring over name, description,
// brand and category, then narrows by exact category when one is given.
// Filtering always precedes sorting and sorting never narrows the set.
func (s *Store) Search(query, category, sortBy string) []models.Product {
	query = strings.ToLower(query)

	var out []models.Product
	for _, p := range s.List() {
		if query != "" && !matches(p, query) {
			continue
		}
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, sortBy)
	return out
}

func matches(p models.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func sortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case SortStockAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Stock < products[j].Stock })
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	default: // SortNewest
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}

// Featured returns up to limit featured products in store order.
func (s *Store) Featured(limit int) []models.Product {
	var out []models.Product
	for _, p := range s.List() {
		if !p.IsFeatured {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

package search

import (
	"strings"

	"github.com/smallbiznis/vitrine/internal/catalog/domain"
)

// Filter keeps products whose name or description contains query, ignoring
// case. An empty query returns every product in its original order. The
// input slice is never modified.
func Filter(products []domain.Product, query string) []domain.Product {
	if query == "" {
		return append([]domain.Product(nil), products...)
	}

	needle := strings.ToLower(query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

// Matches expects needle already lowercased.
func Matches(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Nome), needle) ||
		strings.Contains(strings.ToLower(p.Descricao), needle)
}

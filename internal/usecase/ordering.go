package usecase

import (
	"quote_negotiation/internal/domain/entities"
	"sort"
)

func dedupeByID(items []entities.QuoteRequest) []entities.QuoteRequest {
	seen := make(map[string]struct{}, len(items))
	out := make([]entities.QuoteRequest, 0, len(items))
	for _, q := range items {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}

// sortNewestFirst orders by CreatedAt descending, then ID for a stable listing.
func sortNewestFirst(items []entities.QuoteRequest) []entities.QuoteRequest {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items
}

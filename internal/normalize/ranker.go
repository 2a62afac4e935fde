package normalize

import (
	"slices"
	"strings"

	"github.com/aha-designer/backend/internal/domain"
)

// ClampResultCap resolves a requested result cap: nil means the default,
// anything else is clamped to [MinMaxResults, MaxMaxResults].
func ClampResultCap(requested *int) int {
	if requested == nil {
		return domain.DefaultMaxResults
	}
	return clamp(*requested)
}

// Rank orders parts by their best offer stock (descending), then MPN, then
// identity key, and keeps at most limit of them. limit is clamped like
// ClampResultCap. The input slice is reordered in place.
func Rank(parts []domain.PartHit, limit int) []domain.PartHit {
	sortParts(parts)

	limit = clamp(limit)
	if len(parts) > limit {
		parts = parts[:limit]
	}
	return parts
}

func sortParts(parts []domain.PartHit) {
	slices.SortStableFunc(parts, func(a, b domain.PartHit) int {
		sa, sb := a.MaxStock(), b.MaxStock()
		if sa != sb {
			if sa > sb {
				return -1
			}
			return 1
		}
		if c := strings.Compare(a.MPN, b.MPN); c != 0 {
			return c
		}
		return strings.Compare(a.Key(), b.Key())
	})
}

func clamp(n int) int {
	if n < domain.MinMaxResults {
		return domain.MinMaxResults
	}
	if n > domain.MaxMaxResults {
		return domain.MaxMaxResults
	}
	return n
}

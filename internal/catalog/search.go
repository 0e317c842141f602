package catalog

import (
	"strings"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/text/cases"
)

// Search matches query against every zone name, ignoring case, and returns
// hits in catalog order then zone order. A blank query returns no results.
func (s *Store) Search(query string) []SearchResult {
	q := strings.TrimSpace(query)
	if q == "" {
		return []SearchResult{}
	}
	needle := fold(q)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.search != nil {
		if item := s.search.Get(needle); item != nil {
			return copyResults(item.Value())
		}
	}

	out := []SearchResult{}
	for _, r := range s.restaurants {
		for _, z := range r.DeliveryZones {
			if !strings.Contains(fold(z.Zone), needle) {
				continue
			}
			out = append(out, SearchResult{
				RestaurantName: r.Name,
				ZoneName:       z.Zone,
				Price:          z.Price,
				DeliveryTime:   z.DeliveryTime,
			})
		}
	}

	if s.search != nil {
		s.search.Set(needle, copyResults(out), ttlcache.DefaultTTL)
	}
	return out
}

// fold maps s to its Unicode case-folded form. Casers keep state, so each
// call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func copyResults(rs []SearchResult) []SearchResult {
	out := make([]SearchResult, len(rs))
	copy(out, rs)
	return out
}

package marketplace

import (
	"context"
	"strings"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"

	"gorm.io/gorm"
)

// Service serves the public browse surface: active listings, narrowed
// server-side by type and then in memory by free-text query, category and
// transport mode.
type Service struct {
	DB *gorm.DB
}

// Filter is the browse request.
type Filter struct {
	Query       string
	ListingType string // "" or "all" means every type
	Mode        string // "" or "all" means every mode
	Limit       int
}

const defaultLimit = 100

// SearchListings fetches active listings (optionally narrowed by type at the
// DB) and applies the in-memory filter.
func (s *Service) SearchListings(ctx context.Context, f Filter) ([]domain.Listing, error) {
	q := s.DB.WithContext(ctx).Where("status = ?", constants.StatusActive)
	if f.ListingType != "" && f.ListingType != "all" {
		q = q.Where("listing_type = ?", f.ListingType)
	}
	limit := f.Limit
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}

	var items []domain.Listing
	if err := q.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return FilterListings(items, f.Query, f.ListingType, f.Mode), nil
}

// FilterListings narrows an in-memory collection. Case-insensitive substring
// match of query against title, origin+destination and load type; category
// and mode are exact matches unless "all". The filter is stable: original
// relative order is preserved, no re-sort.
func FilterListings(items []domain.Listing, query, listingType, mode string) []domain.Listing {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Listing, 0, len(items))
	for _, it := range items {
		if listingType != "" && listingType != "all" && it.ListingType != listingType {
			continue
		}
		if mode != "" && mode != "all" && it.TransportMode != mode {
			continue
		}
		if query != "" && !matchesQuery(&it, query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(l *domain.Listing, query string) bool {
	if strings.Contains(strings.ToLower(l.Title), query) {
		return true
	}
	route := strings.ToLower(l.Origin + " " + l.Destination)
	if strings.Contains(route, query) {
		return true
	}
	return strings.Contains(strings.ToLower(l.LoadType), query)
}

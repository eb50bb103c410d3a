package services

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SearchService filters and sorts restaurants by FilterCriteria
type SearchService interface {
	// SearchRestaurants returns the restaurants matching the criteria in a
	// stable order. An empty criteria matches the full catalog.
	SearchRestaurants(criteria models.FilterCriteria) []*models.Restaurant
}

// searchService is the implementation of the SearchService interface
type searchService struct {
	catalog *catalog.Catalog
}

// NewSearchService creates a new instance of SearchService
func NewSearchService(c *catalog.Catalog) SearchService {
	return &searchService{catalog: c}
}

// SearchRestaurants is a pure function of the criteria and the catalog
// snapshot: no side effects, and identical inputs yield identical output.
//
// Matching policy: the keyword matches case-insensitively as a substring of
// the restaurant name or address; max_price keeps restaurants with ANY menu
// item at or under the bound (the representative price is the cheapest
// item); min_rating is an inclusive lower bound on the average rating.
// Malformed bounds match nothing rather than erroring.
func (s *searchService) SearchRestaurants(criteria models.FilterCriteria) []*models.Restaurant {
	matched := make([]*models.Restaurant, 0)
	for _, r := range s.catalog.Restaurants() {
		if matches(r, criteria) {
			matched = append(matched, r)
		}
	}
	sortRestaurants(matched, criteria)
	return matched
}

func matches(r *models.Restaurant, criteria models.FilterCriteria) bool {
	if criteria.Keyword != nil {
		kw := strings.ToLower(strings.TrimSpace(*criteria.Keyword))
		if kw != "" &&
			!strings.Contains(strings.ToLower(r.Name), kw) &&
			!strings.Contains(strings.ToLower(r.Address), kw) {
			return false
		}
	}
	if criteria.MaxPrice != nil {
		// Negative bounds can never be satisfied by a non-negative price,
		// so they match nothing. An empty menu has no qualifying item.
		min, ok := r.MinPrice()
		if !ok || min > *criteria.MaxPrice {
			return false
		}
	}
	if criteria.MinRating != nil && r.AverageRating() < *criteria.MinRating {
		return false
	}
	return true
}

// sortRestaurants orders matched results in place. Ties keep catalog
// insertion order via a stable sort.
func sortRestaurants(restaurants []*models.Restaurant, criteria models.FilterCriteria) {
	if criteria.SortBy == nil {
		return
	}
	switch *criteria.SortBy {
	case models.SortByPrice:
		sort.SliceStable(restaurants, func(i, j int) bool {
			pi, oki := restaurants[i].MinPrice()
			pj, okj := restaurants[j].MinPrice()
			if oki != okj {
				return oki // restaurants without a menu sort last
			}
			return pi < pj
		})
	case models.SortByRating:
		sort.SliceStable(restaurants, func(i, j int) bool {
			return restaurants[i].AverageRating() > restaurants[j].AverageRating()
		})
	case models.SortByDistance:
		// No reference coordinate is modeled, so distance degrades to
		// catalog insertion order.
		log.WithField("sort_by", models.SortByDistance).
			Debug("Distance sort requested without an origin, keeping insertion order")
	default:
		log.WithField("sort_by", *criteria.SortBy).Debug("Ignoring unknown sort key")
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
)

func seededCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	catalog.Seed(c)
	return c
}

func restaurantIDs(restaurants []*models.Restaurant) []string {
	ids := make([]string, len(restaurants))
	for i, r := range restaurants {
		ids[i] = r.RestaurantID
	}
	return ids
}

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestSearchEmptyCriteriaReturnsFullCatalog(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{})
	assert.Equal(t, []string{"rest_001", "rest_002", "rest_003"}, restaurantIDs(results))
}

func TestSearchIsIdempotent(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))
	criteria := models.FilterCriteria{MinRating: f64Ptr(4.0), SortBy: strPtr(models.SortByRating)}

	first := svc.SearchRestaurants(criteria)
	second := svc.SearchRestaurants(criteria)
	assert.Equal(t, restaurantIDs(first), restaurantIDs(second))
}

func TestSearchKeywordMatchesNameCaseInsensitive(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{Keyword: strPtr("BAKERY")})
	assert.Equal(t, []string{"rest_003"}, restaurantIDs(results))
}

func TestSearchKeywordMatchesAddress(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{Keyword: strPtr("xitun")})
	assert.Equal(t, []string{"rest_001"}, restaurantIDs(results))
}

func TestSearchMaxPriceKeepsAnyAffordableItem(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	// rest_001's cheapest item is 280, rest_003's is 120; rest_002 only
	// serves a 1200 steak and is filtered out.
	results := svc.SearchRestaurants(models.FilterCriteria{MaxPrice: f64Ptr(400)})
	assert.Equal(t, []string{"rest_001", "rest_003"}, restaurantIDs(results))
}

func TestSearchNegativeMaxPriceMatchesNothing(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{MaxPrice: f64Ptr(-5)})
	assert.Empty(t, results)
}

func TestSearchMinRatingInclusive(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	// rest_001 averages exactly 4.5 and must be kept by the inclusive bound.
	results := svc.SearchRestaurants(models.FilterCriteria{MinRating: f64Ptr(4.5)})
	assert.Equal(t, []string{"rest_001", "rest_002"}, restaurantIDs(results))
}

func TestSearchSortByPriceAscending(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{SortBy: strPtr(models.SortByPrice)})
	assert.Equal(t, []string{"rest_003", "rest_001", "rest_002"}, restaurantIDs(results))
}

func TestSearchSortByRatingDescending(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{SortBy: strPtr(models.SortByRating)})
	assert.Equal(t, []string{"rest_002", "rest_001", "rest_003"}, restaurantIDs(results))
}

func TestSearchSortByDistanceKeepsInsertionOrder(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{SortBy: strPtr(models.SortByDistance)})
	assert.Equal(t, []string{"rest_001", "rest_002", "rest_003"}, restaurantIDs(results))
}

func TestSearchUnknownSortKeyIgnored(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	results := svc.SearchRestaurants(models.FilterCriteria{SortBy: strPtr("popularity")})
	assert.Equal(t, []string{"rest_001", "rest_002", "rest_003"}, restaurantIDs(results))
}

func TestSearchCombinedCriteria(t *testing.T) {
	svc := NewSearchService(seededCatalog(t))

	criteria := models.FilterCriteria{
		MaxPrice:  f64Ptr(500),
		MinRating: f64Ptr(4.4),
		SortBy:    strPtr(models.SortByPrice),
	}
	results := svc.SearchRestaurants(criteria)
	require.Len(t, results, 1)
	assert.Equal(t, "rest_001", results[0].RestaurantID)
}

func TestSearchEmptyMenuExcludedFromPriceFilter(t *testing.T) {
	c := catalog.New()
	c.AddRestaurant(models.NewRestaurant("rest_empty", "Ghost Kitchen", "nowhere", 0, 0, ""))
	svc := NewSearchService(c)

	assert.Empty(t, svc.SearchRestaurants(models.FilterCriteria{MaxPrice: f64Ptr(1000)}))
	assert.Len(t, svc.SearchRestaurants(models.FilterCriteria{}), 1)
}

package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NutritionInfo holds the macro and calorie values of a menu item.
// Zero values mean "unknown", not "none consumed"; callers must not treat
// an unset field as a met target.
type NutritionInfo struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MenuItem is a purchasable dish owned by exactly one restaurant.
// RestaurantID is a non-owning back-reference; the restaurant keeps the
// owning collection.
type MenuItem struct {
	ItemID       string         `json:"item_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Price        float64        `json:"price"`
	Nutrition    *NutritionInfo `json:"nutrition_info,omitempty"`
	RestaurantID string         `json:"-"`
}

// Review is a rating plus comment attached to exactly one restaurant.
type Review struct {
	ReviewID     string    `json:"review_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Timestamp    time.Time `json:"timestamp"`
	RestaurantID string    `json:"-"`
}

// NewReview builds a review with a generated ID. A zero timestamp defaults
// to the creation time.
func NewReview(rating int, comment string, timestamp time.Time) *Review {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return &Review{
		ReviewID:  uuid.NewString(),
		Rating:    rating,
		Comment:   comment,
		Timestamp: timestamp,
	}
}

// Restaurant aggregates menu items and reviews and derives its average
// rating from the reviews. Mutations and the rating recompute run under a
// per-restaurant lock so concurrent review posts cannot lose updates.
type Restaurant struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	MapLink      string  `json:"map_link"`

	mu            sync.RWMutex
	averageRating float64
	menuItems     []*MenuItem
	reviews       []*Review
}

// NewRestaurant creates an empty restaurant with no menu items or reviews.
func NewRestaurant(id, name, address string, lat, lng float64, mapLink string) *Restaurant {
	return &Restaurant{
		RestaurantID: id,
		Name:         name,
		Address:      address,
		Latitude:     lat,
		Longitude:    lng,
		MapLink:      mapLink,
	}
}

// AddMenuItem appends a dish to the menu and sets its back-reference.
func (r *Restaurant) AddMenuItem(item *MenuItem) error {
	if item.Price < 0 {
		return NewValidationError("price", "must not be negative")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item.RestaurantID = r.RestaurantID
	r.menuItems = append(r.menuItems, item)
	return nil
}

// AddReview appends a review and recomputes the average rating. Ratings
// outside 1..5 are rejected and leave the restaurant unchanged.
func (r *Restaurant) AddReview(review *Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return NewValidationError("rating", "must be between 1 and 5")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	review.RestaurantID = r.RestaurantID
	r.reviews = append(r.reviews, review)

	total := 0
	for _, rev := range r.reviews {
		total += rev.Rating
	}
	r.averageRating = float64(total) / float64(len(r.reviews))
	return nil
}

// AverageRating returns the mean of all review ratings, or 0.0 when the
// restaurant has no reviews.
func (r *Restaurant) AverageRating() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.averageRating
}

// Menu returns the menu items in insertion order.
func (r *Restaurant) Menu() []*MenuItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*MenuItem, len(r.menuItems))
	copy(items, r.menuItems)
	return items
}

// Reviews returns the reviews in insertion order.
func (r *Restaurant) Reviews() []*Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reviews := make([]*Review, len(r.reviews))
	copy(reviews, r.reviews)
	return reviews
}

// FindMenuItem returns the menu item with the given ID, or ErrNotFound.
func (r *Restaurant) FindMenuItem(itemID string) (*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.menuItems {
		if item.ItemID == itemID {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

// MinPrice returns the cheapest menu item price. The boolean is false when
// the menu is empty.
func (r *Restaurant) MinPrice() (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.menuItems) == 0 {
		return 0, false
	}
	min := r.menuItems[0].Price
	for _, item := range r.menuItems[1:] {
		if item.Price < min {
			min = item.Price
		}
	}
	return min, true
}

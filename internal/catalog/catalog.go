package catalog

import (
	"sync"

	"github.com/tastetrail/tastetrail-api/internal/models"
)

// Catalog is the in-memory collection of restaurants, users and favorites
// shared by the services. It is constructed once at startup and handed to
// every component that needs it; there is no package-level instance.
//
// The catalog lock guards the registries and the favorites map. Mutations
// inside a single restaurant or user run under that aggregate's own lock.
type Catalog struct {
	mu          sync.RWMutex
	restaurants []*models.Restaurant
	users       map[string]*models.User
	usernames   map[string]*models.User
	favorites   map[string][]string // user ID -> restaurant IDs, insertion order
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		users:     make(map[string]*models.User),
		usernames: make(map[string]*models.User),
		favorites: make(map[string][]string),
	}
}

// AddRestaurant appends a restaurant to the catalog. Insertion order is the
// stable tiebreak order for search results.
func (c *Catalog) AddRestaurant(r *models.Restaurant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restaurants = append(c.restaurants, r)
}

// Restaurants returns all restaurants in insertion order.
func (c *Catalog) Restaurants() []*models.Restaurant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

// FindRestaurant returns the restaurant with the given ID, or ErrNotFound.
func (c *Catalog) FindRestaurant(id string) (*models.Restaurant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.restaurants {
		if r.RestaurantID == id {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

// FindMenuItem resolves a menu item ID across all restaurants.
func (c *Catalog) FindMenuItem(itemID string) (*models.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.restaurants {
		if item, err := r.FindMenuItem(itemID); err == nil {
			return item, nil
		}
	}
	return nil, models.ErrNotFound
}

// AddUser registers a user. Usernames are unique within the catalog.
func (c *Catalog) AddUser(u *models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.usernames[u.Username]; ok {
		return models.NewValidationError("username", "already taken")
	}
	c.users[u.UserID] = u
	c.usernames[u.Username] = u
	return nil
}

// FindUser returns the user with the given ID, or ErrNotFound.
func (c *Catalog) FindUser(id string) (*models.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if u, ok := c.users[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

// FindUserByName returns the user with the given username, or ErrNotFound.
func (c *Catalog) FindUserByName(username string) (*models.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if u, ok := c.usernames[username]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

// Favorites returns the user's favorite restaurant IDs in the order they
// were added.
func (c *Catalog) Favorites(userID string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	favs := c.favorites[userID]
	out := make([]string, len(favs))
	copy(out, favs)
	return out
}

// AddFavorite marks a restaurant as a favorite of the user. Adding an
// existing favorite is a no-op.
func (c *Catalog) AddFavorite(userID, restaurantID string) error {
	if _, err := c.FindRestaurant(restaurantID); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.favorites[userID] {
		if id == restaurantID {
			return nil
		}
	}
	c.favorites[userID] = append(c.favorites[userID], restaurantID)
	return nil
}

// RemoveFavorite unmarks a favorite. Removing a restaurant that was never
// favorited is a no-op.
func (c *Catalog) RemoveFavorite(userID, restaurantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	favs := c.favorites[userID]
	for i, id := range favs {
		if id == restaurantID {
			c.favorites[userID] = append(favs[:i], favs[i+1:]...)
			return
		}
	}
}

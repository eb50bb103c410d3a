package catalog

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tastetrail/tastetrail-api/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// Seed fills the catalog with the sample restaurants and users used in
// development. Real deployments would load the catalog from an external
// source at startup instead.
func Seed(c *Catalog) {
	for _, r := range sampleRestaurants() {
		c.AddRestaurant(r)
	}
	for _, u := range sampleUsers() {
		if err := c.AddUser(u); err != nil {
			log.WithError(err).WithField("username", u.Username).Warn("Skipping duplicate seed user")
		}
	}
	log.WithFields(logrus.Fields{
		"restaurants": len(c.Restaurants()),
	}).Info("Catalog seeded with sample data")
}

func seedItem(r *models.Restaurant, item *models.MenuItem) {
	if err := r.AddMenuItem(item); err != nil {
		log.WithError(err).WithField("item_id", item.ItemID).Warn("Skipping invalid seed menu item")
	}
}

func seedReview(r *models.Restaurant, review *models.Review) {
	if err := r.AddReview(review); err != nil {
		log.WithError(err).WithField("restaurant_id", r.RestaurantID).Warn("Skipping invalid seed review")
	}
}

func sampleRestaurants() []*models.Restaurant {
	saltAndSlow := models.NewRestaurant(
		"rest_001",
		"Salt & Slow Kitchen",
		"99 Taiwan Blvd Sec 3, Xitun District",
		24.1794, 120.6444,
		"https://maps.google.com/?q=24.1794,120.6444",
	)
	seedItem(saltAndSlow, &models.MenuItem{
		ItemID:      "item_001",
		Name:        "Mediterranean Salad",
		Description: "Seasonal greens with olives and feta, light on the stomach",
		Price:       280,
		Nutrition:   &models.NutritionInfo{Calories: 350, Protein: 12.0, Carbs: 25.0, Fat: 18.0},
	})
	seedItem(saltAndSlow, &models.MenuItem{
		ItemID:      "item_002",
		Name:        "Herb Roasted Chicken",
		Description: "Marinated in fresh herbs, slow roasted at low heat",
		Price:       420,
		Nutrition:   &models.NutritionInfo{Calories: 520, Protein: 45.0, Carbs: 8.0, Fat: 28.0},
	})
	seedReview(saltAndSlow, models.NewReview(5, "Very healthy choice, fresh ingredients", time.Now()))
	seedReview(saltAndSlow, models.NewReview(4, "A bit pricey but worth it", time.Now()))

	duskWagyu := models.NewRestaurant(
		"rest_002",
		"Dusk Wagyu House",
		"161 Sanmin Rd Sec 3, North District",
		24.1500, 120.6800,
		"https://maps.google.com/?q=24.1500,120.6800",
	)
	seedItem(duskWagyu, &models.MenuItem{
		ItemID:      "item_003",
		Name:        "60-Day Dry-Aged Steak",
		Description: "House specialty aged sixty days, paired with natural wine",
		Price:       1200,
		Nutrition:   &models.NutritionInfo{Calories: 850, Protein: 65.0, Carbs: 5.0, Fat: 58.0},
	})
	seedReview(duskWagyu, models.NewReview(5, "Best steak in town", time.Now()))
	seedReview(duskWagyu, models.NewReview(5, "Perfect crust, tender inside", time.Now()))
	seedReview(duskWagyu, models.NewReview(4, "Great but book ahead", time.Now()))

	morningBakery := models.NewRestaurant(
		"rest_003",
		"Morning Light Bakery",
		"51 Gongyi Rd Sec 2, Nantun District",
		24.1400, 120.6400,
		"https://maps.google.com/?q=24.1400,120.6400",
	)
	seedItem(morningBakery, &models.MenuItem{
		ItemID:      "item_004",
		Name:        "Hand-Rolled Croissant",
		Description: "Baked fresh at dawn, classic pairing with single-origin coffee",
		Price:       120,
		Nutrition:   &models.NutritionInfo{Calories: 280, Protein: 6.0, Carbs: 32.0, Fat: 14.0},
	})
	seedReview(morningBakery, models.NewReview(4, "Flaky and buttery", time.Now()))
	seedReview(morningBakery, models.NewReview(5, "Worth the early wake-up", time.Now()))
	seedReview(morningBakery, models.NewReview(4, "Coffee could be hotter", time.Now()))

	return []*models.Restaurant{saltAndSlow, duskWagyu, morningBakery}
}

func sampleUsers() []*models.User {
	alice := models.NewUser("user_001", "alice", "")
	alice.SetProfile(&models.UserProfile{Budget: 500, Mode: models.ModeNormal})

	bob := models.NewUser("user_002", "bob", "")
	bob.SetProfile(&models.UserProfile{
		Budget: 800,
		Mode:   models.ModeFitness,
		HealthGoal: &models.HealthProfile{
			TargetCalories: 2000,
			TargetProtein:  150.0,
			TargetFat:      60.0,
		},
	})

	charlie := models.NewUser("user_003", "charlie", "")
	charlie.SetProfile(&models.UserProfile{Budget: 1000, Mode: models.ModeTourist})

	return []*models.User{alice, bob, charlie}
}

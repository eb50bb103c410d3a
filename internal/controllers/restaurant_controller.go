package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
	"github.com/tastetrail/tastetrail-api/internal/services"
)

// RestaurantController handles HTTP requests related to restaurants
type RestaurantController interface {
	// ListRestaurants returns a summary of every restaurant in the catalog
	ListRestaurants(c *gin.Context)
	// GetRestaurant returns one restaurant with its menu and reviews
	GetRestaurant(c *gin.Context)
	// GetMenu returns the menu of one restaurant
	GetMenu(c *gin.Context)
	// GetReviews returns the reviews of one restaurant
	GetReviews(c *gin.Context)
	// AddReview posts a review to a restaurant
	AddReview(c *gin.Context)
	// Search filters and sorts restaurants by query parameters
	Search(c *gin.Context)
}

type restaurantController struct {
	catalog *catalog.Catalog
	search  services.SearchService
}

// NewRestaurantController creates a new instance of RestaurantController
func NewRestaurantController(cat *catalog.Catalog, search services.SearchService) RestaurantController {
	return &restaurantController{catalog: cat, search: search}
}

func restaurantSummary(r *models.Restaurant) gin.H {
	return gin.H{
		"restaurant_id":   r.RestaurantID,
		"name":            r.Name,
		"address":         r.Address,
		"average_rating":  r.AverageRating(),
		"menu_item_count": len(r.Menu()),
		"review_count":    len(r.Reviews()),
	}
}

func restaurantDetail(r *models.Restaurant) gin.H {
	return gin.H{
		"restaurant_id":  r.RestaurantID,
		"name":           r.Name,
		"address":        r.Address,
		"latitude":       r.Latitude,
		"longitude":      r.Longitude,
		"map_link":       r.MapLink,
		"average_rating": r.AverageRating(),
		"menu_items":     r.Menu(),
		"reviews":        r.Reviews(),
	}
}

// ListRestaurants godoc
// @Summary List all restaurants
// @Description Get a summary list of every restaurant in the catalog
// @Tags restaurants
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/public/restaurants [get]
func (rc *restaurantController) ListRestaurants(ctx *gin.Context) {
	restaurants := rc.catalog.Restaurants()
	data := make([]gin.H, 0, len(restaurants))
	for _, r := range restaurants {
		data = append(data, restaurantSummary(r))
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

// GetRestaurant godoc
// @Summary Get restaurant by ID
// @Description Get a single restaurant with its menu and reviews
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id} [get]
func (rc *restaurantController) GetRestaurant(ctx *gin.Context) {
	r, err := rc.catalog.FindRestaurant(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantNotFound, "Restaurant not found"))
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": restaurantDetail(r)})
}

// GetMenu godoc
// @Summary Get restaurant menu
// @Description Get the menu items of a restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id}/menu [get]
func (rc *restaurantController) GetMenu(ctx *gin.Context) {
	r, err := rc.catalog.FindRestaurant(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantNotFound, "Restaurant not found"))
		return
	}
	menu := r.Menu()
	ctx.JSON(http.StatusOK, gin.H{"data": menu, "count": len(menu)})
}

// GetReviews godoc
// @Summary Get restaurant reviews
// @Description Get the reviews of a restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id}/reviews [get]
func (rc *restaurantController) GetReviews(ctx *gin.Context) {
	r, err := rc.catalog.FindRestaurant(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantNotFound, "Restaurant not found"))
		return
	}
	reviews := r.Reviews()
	ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
}

// AddReview godoc
// @Summary Post a review
// @Description Add a review to a restaurant and recompute its average rating
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param review body object true "Review payload (rating 1..5, comment)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/restaurants/{id}/reviews [post]
func (rc *restaurantController) AddReview(ctx *gin.Context) {
	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	r, err := rc.catalog.FindRestaurant(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantNotFound, "Restaurant not found"))
		return
	}

	review := models.NewReview(req.Rating, req.Comment, time.Now())
	if err := r.AddReview(review); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidRating, ve.Message,
				map[string]interface{}{"field": ve.Field}))
			return
		}
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to add review"))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"data":           review,
		"average_rating": r.AverageRating(),
	})
}

// Search godoc
// @Summary Search restaurants
// @Description Filter and sort restaurants by keyword, max_price, min_rating and sort_by
// @Tags restaurants
// @Accept json
// @Produce json
// @Param keyword query string false "Substring matched against name and address"
// @Param max_price query number false "Keep restaurants with any menu item at or under this price"
// @Param min_rating query number false "Inclusive lower bound on average rating"
// @Param sort_by query string false "Sort key: price, rating or distance"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Router /api/v1/public/restaurants/search [get]
func (rc *restaurantController) Search(ctx *gin.Context) {
	var criteria models.FilterCriteria
	if ctx.Request.Method == http.MethodPost {
		if err := ctx.ShouldBindJSON(&criteria); err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
			return
		}
	} else {
		if err := ctx.ShouldBindQuery(&criteria); err != nil {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid query parameters"))
			return
		}
	}

	results := rc.search.SearchRestaurants(criteria)
	data := make([]gin.H, 0, len(results))
	for _, r := range results {
		data = append(data, restaurantSummary(r))
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

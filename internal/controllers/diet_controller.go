package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
	"github.com/tastetrail/tastetrail-api/internal/services"
)

// DietController handles the per-user endpoints: recommendations, diet
// logs, analytics and favorites. Every handler resolves the caller from
// the userID the auth middleware put into the context.
type DietController interface {
	GetRecommendations(c *gin.Context)
	ListDietLogs(c *gin.Context)
	AddDietLog(c *gin.Context)
	GetAnalytics(c *gin.Context)
	ListFavorites(c *gin.Context)
	AddFavorite(c *gin.Context)
	RemoveFavorite(c *gin.Context)
}

type dietController struct {
	catalog        *catalog.Catalog
	recommendation services.RecommendationService
	analytics      services.AnalyticsService
}

// NewDietController creates a new instance of DietController
func NewDietController(cat *catalog.Catalog, rec services.RecommendationService, ana services.AnalyticsService) DietController {
	return &dietController{catalog: cat, recommendation: rec, analytics: ana}
}

// currentUser resolves the authenticated catalog user, writing the error
// response itself when resolution fails.
func (dc *dietController) currentUser(ctx *gin.Context) (*models.User, bool) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return nil, false
	}
	id, ok := userID.(string)
	if !ok {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Unexpected user ID type"))
		return nil, false
	}
	user, err := dc.catalog.FindUser(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
		return nil, false
	}
	return user, true
}

// GetRecommendations godoc
// @Summary Get menu recommendations
// @Description Get a ranked list of menu items for the authenticated user, shaped by the user's mode
// @Tags diet
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/recommendations [get]
func (dc *dietController) GetRecommendations(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}

	items := dc.recommendation.Recommend(user)
	data := make([]gin.H, 0, len(items))
	for _, item := range items {
		entry := gin.H{
			"item_id":       item.ItemID,
			"name":          item.Name,
			"description":   item.Description,
			"price":         item.Price,
			"restaurant_id": item.RestaurantID,
		}
		if item.Nutrition != nil {
			entry["nutrition_info"] = item.Nutrition
		}
		data = append(data, entry)
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

// ListDietLogs godoc
// @Summary List diet logs
// @Description Get the authenticated user's diet logs in append order
// @Tags diet
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/diet-logs [get]
func (dc *dietController) ListDietLogs(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}

	logs := user.DietLogs()
	data := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		entry := gin.H{
			"log_id":       l.LogID,
			"timestamp":    l.Timestamp.Format(time.RFC3339),
			"portion_size": l.PortionSize,
			"menu_item_id": l.MenuItemID,
		}
		if item, err := dc.catalog.FindMenuItem(l.MenuItemID); err == nil {
			entry["menu_item_name"] = item.Name
		}
		data = append(data, entry)
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

// AddDietLog godoc
// @Summary Log a meal
// @Description Append a diet log linking the authenticated user to a consumed menu item
// @Tags diet
// @Accept json
// @Produce json
// @Param log body object true "Diet log payload (menu_item_id, portion_size)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/diet-logs [post]
func (dc *dietController) AddDietLog(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		MenuItemID  string `json:"menu_item_id" binding:"required"`
		PortionSize string `json:"portion_size"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	item, err := dc.catalog.FindMenuItem(req.MenuItemID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrMenuItemNotFound, "Menu item not found"))
		return
	}

	log := user.LogMeal(item, req.PortionSize, time.Now())
	ctx.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"log_id":       log.LogID,
			"timestamp":    log.Timestamp.Format(time.RFC3339),
			"portion_size": log.PortionSize,
			"menu_item_id": log.MenuItemID,
		},
	})
}

// GetAnalytics godoc
// @Summary Get nutrition analytics
// @Description Aggregate the authenticated user's diet logs into a nutrition report
// @Tags diet
// @Produce json
// @Success 200 {object} services.NutritionReport
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/analytics [get]
func (dc *dietController) GetAnalytics(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dc.analytics.Analyze(user))
}

// ListFavorites godoc
// @Summary List favorite restaurants
// @Description Get the authenticated user's favorite restaurants in the order they were added
// @Tags favorites
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/favorites [get]
func (dc *dietController) ListFavorites(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}

	data := make([]gin.H, 0)
	for _, id := range dc.catalog.Favorites(user.UserID) {
		if r, err := dc.catalog.FindRestaurant(id); err == nil {
			data = append(data, restaurantSummary(r))
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
}

// AddFavorite godoc
// @Summary Add a favorite
// @Description Mark a restaurant as a favorite of the authenticated user
// @Tags favorites
// @Accept json
// @Produce json
// @Param favorite body object true "Favorite payload (restaurant_id)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/favorites [post]
func (dc *dietController) AddFavorite(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}

	var req struct {
		RestaurantID string `json:"restaurant_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if err := dc.catalog.AddFavorite(user.UserID, req.RestaurantID); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantNotFound, "Restaurant not found"))
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"restaurant_id": req.RestaurantID})
}

// RemoveFavorite godoc
// @Summary Remove a favorite
// @Description Unmark a restaurant as a favorite of the authenticated user
// @Tags favorites
// @Produce json
// @Param restaurant_id query string true "Restaurant ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/favorites [delete]
func (dc *dietController) RemoveFavorite(ctx *gin.Context) {
	user, ok := dc.currentUser(ctx)
	if !ok {
		return
	}

	restaurantID := ctx.Query("restaurant_id")
	if restaurantID == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "restaurant_id is required"))
		return
	}

	dc.catalog.RemoveFavorite(user.UserID, restaurantID)
	ctx.JSON(http.StatusNoContent, nil)
}

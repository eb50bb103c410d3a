package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/services"
)

// authAs injects an authenticated identity without going through the JWT
// middleware, since middleware behavior is tested on its own.
func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func setupRestaurantRouter(t *testing.T) (*gin.Engine, *catalog.Catalog) {
	gin.SetMode(gin.TestMode)
	cat := catalog.New()
	catalog.Seed(cat)

	controller := NewRestaurantController(cat, services.NewSearchService(cat))

	router := gin.New()
	router.GET("/restaurants", controller.ListRestaurants)
	router.GET("/restaurants/search", controller.Search)
	router.POST("/restaurants/search", controller.Search)
	router.GET("/restaurants/:id", controller.GetRestaurant)
	router.GET("/restaurants/:id/menu", controller.GetMenu)
	router.GET("/restaurants/:id/reviews", controller.GetReviews)
	router.POST("/restaurants/:id/reviews", authAs("user_001"), controller.AddReview)
	return router, cat
}

func TestListRestaurants(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodGet, "/restaurants", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["count"])

	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, "rest_001", first["restaurant_id"])
	assert.Equal(t, 4.5, first["average_rating"])
	assert.Equal(t, float64(2), first["menu_item_count"])
}

func TestGetRestaurantDetail(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodGet, "/restaurants/rest_001", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Salt & Slow Kitchen", data["name"])
	assert.Len(t, data["menu_items"], 2)
	assert.Len(t, data["reviews"], 2)
}

func TestGetRestaurantNotFound(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodGet, "/restaurants/rest_999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RESTAURANT_NOT_FOUND")
}

func TestGetMenu(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodGet, "/restaurants/rest_003/menu", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Contains(t, w.Body.String(), "Hand-Rolled Croissant")
}

func TestGetReviews(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodGet, "/restaurants/rest_002/reviews", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["count"])
}

func TestAddReviewUpdatesAverage(t *testing.T) {
	router, cat := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodPost, "/restaurants/rest_003/reviews", gin.H{
		"rating":  5,
		"comment": "Flaky perfection",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	// Seeded ratings 4, 5, 4 plus the new 5 average to 4.5
	assert.Equal(t, 4.5, body["average_rating"])

	r, err := cat.FindRestaurant("rest_003")
	require.NoError(t, err)
	assert.Len(t, r.Reviews(), 4)
}

func TestAddReviewInvalidRating(t *testing.T) {
	router, cat := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodPost, "/restaurants/rest_003/reviews", gin.H{
		"rating": 6,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_RATING")

	r, err := cat.FindRestaurant("rest_003")
	require.NoError(t, err)
	assert.Len(t, r.Reviews(), 3)
}

func TestAddReviewRestaurantNotFound(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodPost, "/restaurants/rest_999/reviews", gin.H{
		"rating": 4,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchByQueryParams(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	w := performJSON(router, http.MethodGet, "/restaurants/search?keyword=bakery", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, "rest_003", first["restaurant_id"])
}

func TestSearchByJSONBody(t *testing.T) {
	router, _ := setupRestaurantRouter(t)

	maxPrice := 400.0
	w := performJSON(router, http.MethodPost, "/restaurants/search", gin.H{
		"max_price": maxPrice,
		"sort_by":   "price",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])
	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	assert.Equal(t, "rest_003", first["restaurant_id"])
}

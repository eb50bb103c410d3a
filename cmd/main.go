package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/tastetrail/tastetrail-api/docs" // Import generated docs
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/config"
	"github.com/tastetrail/tastetrail-api/internal/controllers"
	"github.com/tastetrail/tastetrail-api/internal/database"
	"github.com/tastetrail/tastetrail-api/internal/middleware"
	"github.com/tastetrail/tastetrail-api/internal/models"
	"github.com/tastetrail/tastetrail-api/internal/services"
)

var (
	db                   *gorm.DB
	appCatalog           *catalog.Catalog
	userService          services.UserService
	authController       *controllers.AuthController
	restaurantController controllers.RestaurantController
	dietController       controllers.DietController
	configuration        *config.Config
)

// @title TasteTrail API
// @version 1.0
// @description Restaurant discovery and diet tracking API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize the credential store
	setupDatabase(configuration)

	// Build and seed the in-memory catalog
	appCatalog = catalog.New()
	catalog.Seed(appCatalog)

	// Initialize services and controllers
	userService = services.NewUserService(db, appCatalog)
	searchService := services.NewSearchService(appCatalog)
	recommendationService := services.NewRecommendationService(appCatalog, configuration.MaxRecommendations)
	analyticsService := services.NewAnalyticsService(appCatalog)

	authController = controllers.NewAuthController(userService, configuration.JWTSecret)
	restaurantController = controllers.NewRestaurantController(appCatalog, searchService)
	dietController = controllers.NewDietController(appCatalog, recommendationService, analyticsService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupDatabase opens the credential store and migrates its schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  "disable",
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(db.AutoMigrate(&models.Credential{}))
	return db
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		publicApi := v1.Group("/public")
		{
			publicApi.GET("/restaurants", restaurantController.ListRestaurants)
			publicApi.GET("/restaurants/search", restaurantController.Search)
			publicApi.POST("/restaurants/search", restaurantController.Search)
			publicApi.GET("/restaurants/:id", restaurantController.GetRestaurant)
			publicApi.GET("/restaurants/:id/menu", restaurantController.GetMenu)
			publicApi.GET("/restaurants/:id/reviews", restaurantController.GetReviews)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		{
			protectedApi.POST("/restaurants/:id/reviews", restaurantController.AddReview)
			protectedApi.GET("/recommendations", dietController.GetRecommendations)
			protectedApi.GET("/diet-logs", dietController.ListDietLogs)
			protectedApi.POST("/diet-logs", dietController.AddDietLog)
			protectedApi.GET("/analytics", dietController.GetAnalytics)
			protectedApi.GET("/favorites", dietController.ListFavorites)
			protectedApi.POST("/favorites", dietController.AddFavorite)
			protectedApi.DELETE("/favorites", dietController.RemoveFavorite)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "tastetrail-api",
	})
}

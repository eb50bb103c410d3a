package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tastetrail/tastetrail-api/internal/models"
	"github.com/tastetrail/tastetrail-api/internal/services"
)

type AuthController struct {
	userService services.UserService
	jwtSecret   []byte
}

func NewAuthController(userService services.UserService, jwtSecret string) *AuthController {
	return &AuthController{
		userService: userService,
		jwtSecret:   []byte(jwtSecret),
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a credential and an empty profile for a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body object true "Registration payload (username, password)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, err.Error()))
		return
	}

	user, err := ac.userService.CreateUser(req.Username, req.Password)
	if err != nil {
		if models.IsValidation(err) {
			c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, err.Error()))
			return
		}
		if errors.Is(err, models.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, models.NewAPIError(models.ErrStorageDown, "Credential store unavailable, try again later"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Registration failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": user.UserID, "username": user.Username})
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and issue a Bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body object true "Login payload (username, password)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Failure 503 {object} models.APIError
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, err.Error()))
		return
	}

	identity, err := ac.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		// Storage trouble is recoverable and must not read as bad credentials
		if errors.Is(err, models.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, models.NewAPIError(models.ErrStorageDown, "Credential store unavailable, try again later"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Login failed"))
		return
	}
	if identity == nil {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Invalid username or password"))
		return
	}

	// Generate JWT token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      identity.UserID,
		"username": identity.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(ac.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "token_generation_failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   86400,
		"user": gin.H{
			"user_id":  identity.UserID,
			"username": identity.Username,
		},
	})
}

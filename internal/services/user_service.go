package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tastetrail/tastetrail-api/internal/catalog"
	"github.com/tastetrail/tastetrail-api/internal/models"
	"gorm.io/gorm"
)

// Identity is the authenticated view of a user returned by the credential
// store. It carries no credential material.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// UserService is the credential-check collaborator: it registers users and
// verifies logins against the credential store. Callers depend only on this
// contract, never on the storage engine behind it.
type UserService interface {
	// Authenticate returns the identity for valid credentials, nil for
	// invalid ones, and ErrStorageUnavailable when the store is down.
	Authenticate(username, password string) (*Identity, error)
	// CreateUser registers a credential and the matching catalog user.
	CreateUser(username, password string) (*models.User, error)
}

type userService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB, c *catalog.Catalog) UserService {
	return &userService{db: db, catalog: c}
}

func (s *userService) Authenticate(username, password string) (*Identity, error) {
	var cred models.Credential
	if err := s.db.Where("username = ?", username).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}

	if !cred.CheckPassword(password) {
		return nil, nil
	}
	return &Identity{UserID: cred.UserID, Username: cred.Username}, nil
}

func (s *userService) CreateUser(username, password string) (*models.User, error) {
	if username == "" {
		return nil, models.NewValidationError("username", "must not be empty")
	}
	if len(password) < 6 {
		return nil, models.NewValidationError("password", "must be at least 6 characters")
	}

	var existing models.Credential
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, models.NewValidationError("username", "already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}

	cred := models.Credential{
		UserID:   uuid.NewString(),
		Username: username,
	}
	if err := cred.HashPassword(password); err != nil {
		return nil, err
	}
	if err := s.db.Create(&cred).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageUnavailable, err)
	}

	user := models.NewUser(cred.UserID, username, cred.PasswordHash)
	if err := s.catalog.AddUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

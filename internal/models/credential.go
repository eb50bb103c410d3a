package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Credential is the persisted login record for a user. Only the bcrypt hash
// is ever stored or compared; the plaintext password never leaves the
// request that carried it.
type Credential struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HashPassword replaces PasswordHash with the bcrypt hash of plaintext.
func (c *Credential) HashPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (c *Credential) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plaintext)) == nil
}

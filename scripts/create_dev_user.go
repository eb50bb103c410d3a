package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Credential struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func main() {
	// Parse command line flags
	username := flag.String("username", "dev", "Username for the development account")
	password := flag.String("password", "dev-secret-123", "Password for the development account")
	dbPath := flag.String("db", "tastetrail.sqlite", "Path to the credential store")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&Credential{}); err != nil {
		log.Fatal("Failed to migrate credential store:", err)
	}

	// Check if the account already exists
	var existing Credential
	if err := db.Where("username = ?", *username).First(&existing).Error; err == nil {
		fmt.Printf("Development account already exists!\n")
		fmt.Printf("Username: %s\n", existing.Username)
		fmt.Printf("User ID: %s\n", existing.UserID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	cred := Credential{
		UserID:       fmt.Sprintf("user_dev_%d", time.Now().Unix()),
		Username:     *username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(&cred).Error; err != nil {
		log.Fatal("Failed to create credential:", err)
	}

	fmt.Printf("✓ Development account created!\n")
	fmt.Printf("Username: %s\n", cred.Username)
	fmt.Printf("Password: %s\n", *password)
	fmt.Printf("User ID: %s\n", cred.UserID)
	fmt.Println("\nUse these credentials for testing:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/auth/login \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"username\": \"%s\", \"password\": \"%s\"}'\n", cred.Username, *password)
}

package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ticketdesk/internal/config"
	"ticketdesk/internal/db"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

// Seeds the first admin account. Roles are only mutable through an admin
// session, so a fresh deployment needs one minted out of band.
func main() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)

	existing, err := users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			log.Printf("User %q is already an admin, nothing to do", username)
			return
		}
		if err := users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		log.Printf("Promoted existing user %q to admin", username)
	case err == gorm.ErrRecordNotFound:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		admin := &model.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Created admin user %q (id=%d)", username, admin.ID)
	default:
		log.Fatalf("Failed to look up user: %v", err)
	}
}

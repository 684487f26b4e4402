// Seeds an admin account. Usage:
//
//	ADMIN_EMAIL=me@example.com ADMIN_PASSWORD=... go run ./scripts/seed_admin.go
//
// Re-running with an existing email updates the password.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/db"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/services"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

func main() {
	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Error("ADMIN_EMAIL and ADMIN_PASSWORD are required")
		os.Exit(1)
	}

	hash, err := services.HashAdminPassword(password)
	if err != nil {
		log.Error("Password rejected", "error", err)
		os.Exit(1)
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	adminRepo := repos.NewAdminUserRepo(pg.DB(), log)

	existing, err := adminRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		log.Error("Lookup failed", "error", err)
		os.Exit(1)
	}
	if existing != nil {
		if err := adminRepo.UpdatePasswordHash(ctx, nil, existing.ID, hash); err != nil {
			log.Error("Password update failed", "error", err)
			os.Exit(1)
		}
		log.Info("Admin password updated", "email", email)
		return
	}

	if _, err := adminRepo.Create(ctx, nil, &types.AdminUser{Email: email, PasswordHash: hash}); err != nil {
		log.Error("Admin creation failed", "error", err)
		os.Exit(1)
	}
	log.Info("Admin created", "email", email)
}

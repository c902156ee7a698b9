package main

import (
	"log"

	"github.com/todosimple/taskboard/internal/config"
	"github.com/todosimple/taskboard/internal/database"
	"github.com/todosimple/taskboard/internal/repository"
	"github.com/todosimple/taskboard/internal/services"
)

// Seeds the lookup catalogs and guarantees the bootstrap admin account.
// Safe to run repeatedly.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database.GetDB())
	userService := services.NewUserService(userRepo)

	admin, err := userService.EnsureAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	log.Printf("Admin account ready: %s (id=%d)", admin.Email, admin.ID)
}

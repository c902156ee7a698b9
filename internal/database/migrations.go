package database

import (
	"fmt"
	"log"

	"github.com/todosimple/taskboard/internal/models"
	"gorm.io/gorm"
)

func Migrate() error {
	log.Println("Running database migrations...")
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Project{},
		&models.ProjectMember{},
		&models.TaskStatus{},
		&models.Priority{},
		&models.Task{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := SeedLookups(DB); err != nil {
		return fmt.Errorf("failed to seed lookup tables: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// SeedLookups inserts the role and status/priority catalogs if absent.
// The task engine relies on exactly one default status, one default
// priority, and a final-flagged status existing.
func SeedLookups(db *gorm.DB) error {
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		role := models.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	statuses := []models.TaskStatus{
		{Name: "Pending", SortOrder: 1, IsDefault: true},
		{Name: "In Progress", SortOrder: 2},
		{Name: "Done", SortOrder: 3, IsFinal: true},
	}
	for _, s := range statuses {
		status := s
		if err := db.Where("name = ?", s.Name).FirstOrCreate(&status).Error; err != nil {
			return err
		}
	}

	priorities := []models.Priority{
		{Name: "Low", SortOrder: 1},
		{Name: "Medium", SortOrder: 2, IsDefault: true},
		{Name: "High", SortOrder: 3},
	}
	for _, p := range priorities {
		priority := p
		if err := db.Where("name = ?", p.Name).FirstOrCreate(&priority).Error; err != nil {
			return err
		}
	}

	return nil
}

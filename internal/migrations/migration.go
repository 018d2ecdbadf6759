package migrations

import (
	"log"

	"brunch_planner/internal/config"
	"brunch_planner/internal/models"
	"brunch_planner/internal/repository"
	"brunch_planner/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates default data after the schema migration.
func RunMigrations(db *gorm.DB, cfg *config.Config) error {
	log.Println("Running database migrations...")

	if err := createDefaultUnits(db); err != nil {
		log.Printf("Warning: Failed to create default units: %v", err)
	}

	if err := createDefaultAdmin(db, cfg.AdminPassword); err != nil {
		log.Printf("Warning: Failed to create default admin: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultUnits(db *gorm.DB) error {
	unitRepo := repository.NewUnitRepository(db)

	existing, err := unitRepo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("Creating default units...")
	for _, name := range []string{"unit", "g", "kg", "L", "mL"} {
		if err := unitRepo.Create(&models.Unit{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

func createDefaultAdmin(db *gorm.DB, password string) error {
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	existing, err := userService.GetUserByUsername("admin")
	if err == nil && existing != nil {
		return nil
	}

	log.Println("Creating default admin user...")
	admin := &models.User{
		Username: "admin",
		Role:     string(models.Admin),
		IsActive: true,
	}
	return userService.CreateUser(admin, password)
}

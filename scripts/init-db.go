package main

import (
	"fmt"
	"log"

	"brunch_planner/internal/config"
	"brunch_planner/internal/database"
	"brunch_planner/internal/migrations"
	"brunch_planner/internal/models"
	"brunch_planner/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.ProductType{},
		&models.Unit{},
		&models.Product{},
		&models.Formula{},
		&models.FormulaLine{},
		&models.Order{},
		&models.OrderExtraProduct{},
		&models.OrderFormula{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Recreating tables...")
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.ProductType{},
		&models.Unit{},
		&models.Product{},
		&models.Formula{},
		&models.FormulaLine{},
		&models.Order{},
		&models.OrderExtraProduct{},
		&models.OrderFormula{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := migrations.RunMigrations(db, cfg); err != nil {
		log.Fatal("Failed to seed default data:", err)
	}

	if err := seedSampleCatalog(db); err != nil {
		log.Printf("Warning: Failed to seed sample catalog: %v", err)
	}

	fmt.Println("Database initialized successfully!")
}

// seedSampleCatalog creates a small demo catalog and one formula so the API
// has something to serve right after a reset.
func seedSampleCatalog(db *gorm.DB) error {
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	formulaRepo := repository.NewFormulaRepository(db)
	lineRepo := repository.NewFormulaLineRepository(db)

	bakery := &models.Category{Name: "Bakery"}
	dairy := &models.Category{Name: "Dairy"}
	for _, category := range []*models.Category{bakery, dairy} {
		if err := categoryRepo.Create(category); err != nil {
			return err
		}
	}

	pieceUnit, err := unitRepo.GetByName("unit")
	if err != nil {
		return err
	}
	gramUnit, err := unitRepo.GetByName("g")
	if err != nil {
		return err
	}

	bread := &models.Product{Name: "Bread", CategoryID: &bakery.ID}
	butter := &models.Product{Name: "Butter", CategoryID: &dairy.ID}
	for _, product := range []*models.Product{bread, butter} {
		if err := productRepo.Create(product); err != nil {
			return err
		}
	}

	breakfast := &models.Formula{Name: "Breakfast Basic", TypeTag: string(models.FormulaBrunch)}
	if err := formulaRepo.Create(breakfast); err != nil {
		return err
	}

	lines := []*models.FormulaLine{
		{FormulaID: breakfast.ID, ProductID: bread.ID, QuantityPerGuest: decimal.RequireFromString("0.5"), UnitID: pieceUnit.ID},
		{FormulaID: breakfast.ID, ProductID: butter.ID, QuantityPerGuest: decimal.NewFromInt(20), UnitID: gramUnit.ID},
	}
	for _, line := range lines {
		if err := lineRepo.Create(line); err != nil {
			return err
		}
	}

	return nil
}

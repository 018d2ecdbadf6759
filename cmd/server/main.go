package main

import (
	"log"
	"time"

	"brunch_planner/internal/config"
	"brunch_planner/internal/database"
	"brunch_planner/internal/handlers"
	"brunch_planner/internal/migrations"
	"brunch_planner/internal/redis"
	"brunch_planner/internal/repository"
	"brunch_planner/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Seed default data
	if err := migrations.RunMigrations(db, cfg); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	typeRepo := repository.NewProductTypeRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	formulaRepo := repository.NewFormulaRepository(db)
	formulaLineRepo := repository.NewFormulaLineRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderFormulaRepo := repository.NewOrderFormulaRepository(db)
	orderProdRepo := repository.NewOrderProductRepository(db)

	// Initialize services
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, typeRepo, unitRepo, formulaLineRepo, orderProdRepo)
	formulaService := services.NewFormulaService(formulaRepo, formulaLineRepo, productRepo, unitRepo, orderFormulaRepo, redisClient, cacheTTL)
	orderService := services.NewOrderService(orderRepo, orderFormulaRepo, orderProdRepo, formulaRepo, productRepo, unitRepo)
	planningService := services.NewPlanningService(orderRepo, orderFormulaRepo, orderProdRepo, formulaRepo, formulaLineRepo, catalogService, cfg.KeepZeroLines)

	// Initialize handlers
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	authHandler := handlers.NewAuthHandler(userService, redisClient, sessionTTL)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	formulaHandler := handlers.NewFormulaHandler(formulaService)
	orderHandler := handlers.NewOrderHandler(orderService)
	planningHandler := handlers.NewPlanningHandler(planningService)

	// Setup routes
	router := gin.Default()

	router.POST("/api/auth/login", authHandler.Login)
	router.POST("/api/auth/logout", authHandler.Logout)

	api := router.Group("/api")
	api.Use(authHandler.RequireSession())
	{
		api.GET("/products", catalogHandler.ListProducts)
		api.POST("/products", catalogHandler.CreateProduct)
		api.GET("/products/:id", catalogHandler.GetProduct)
		api.PUT("/products/:id", catalogHandler.UpdateProduct)
		api.DELETE("/products/:id", catalogHandler.DeleteProduct)

		api.GET("/categories", catalogHandler.ListCategories)
		api.POST("/categories", catalogHandler.CreateCategory)
		api.PUT("/categories/:id", catalogHandler.UpdateCategory)
		api.DELETE("/categories/:id", catalogHandler.DeleteCategory)

		api.GET("/types", catalogHandler.ListProductTypes)
		api.POST("/types", catalogHandler.CreateProductType)
		api.PUT("/types/:id", catalogHandler.UpdateProductType)
		api.DELETE("/types/:id", catalogHandler.DeleteProductType)

		api.GET("/units", catalogHandler.ListUnits)
		api.POST("/units", catalogHandler.CreateUnit)
		api.DELETE("/units/:id", catalogHandler.DeleteUnit)

		api.GET("/formulas", formulaHandler.ListFormulas)
		api.POST("/formulas", formulaHandler.CreateFormula)
		api.GET("/formulas/:id", formulaHandler.GetFormula)
		api.PUT("/formulas/:id", formulaHandler.UpdateFormula)
		api.DELETE("/formulas/:id", formulaHandler.DeleteFormula)
		api.GET("/formulas/:id/lines", formulaHandler.ListLines)
		api.POST("/formulas/:id/lines", formulaHandler.AddLine)
		api.PUT("/formula-lines/:line_id", formulaHandler.UpdateLine)
		api.DELETE("/formula-lines/:line_id", formulaHandler.DeleteLine)
		api.GET("/formulas/:id/expand", formulaHandler.Expand)

		api.GET("/orders", orderHandler.ListOrders)
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PUT("/orders/:id", orderHandler.UpdateOrder)
		api.DELETE("/orders/:id", orderHandler.DeleteOrder)
		api.GET("/orders/:id/content", orderHandler.GetContent)
		api.POST("/orders/:id/formulas", orderHandler.AttachFormula)
		api.PUT("/order-formulas/:order_formula_id", orderHandler.UpdateAttachedFormula)
		api.DELETE("/order-formulas/:order_formula_id", orderHandler.DetachFormula)
		api.POST("/orders/:id/products", orderHandler.AddExtraProduct)
		api.PUT("/order-products/:extra_id", orderHandler.UpdateExtraProduct)
		api.DELETE("/order-products/:extra_id", orderHandler.RemoveExtraProduct)

		api.GET("/planning/production", planningHandler.GetProductionPlan)
		api.GET("/planning/production/rollup", planningHandler.GetProductionRollup)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"log"

	"portfolio-ai-be/internal/config"
	"portfolio-ai-be/internal/model"
	"portfolio-ai-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate
	models := model.All()
	log.Printf("Running AutoMigrate for %d tables on %s...", len(models), driverName(cfg.Database.Driver))

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

func driverName(driver string) string {
	if driver == "" {
		return database.DriverPostgres
	}
	return driver
}

package main

import (
	"log"

	"fantasy-hoops-be/internal/config"
	"fantasy-hoops-be/pkg/database"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Driver != database.DriverSQLite && cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(database.GormConfig{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.Connection,
		Verbose: true,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running AutoMigrate for %d tables...", len(database.Models()))
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	log.Println("Migration completed successfully.")
}

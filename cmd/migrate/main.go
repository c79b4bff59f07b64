package main

import (
	"fmt"
	"os"

	"github.com/Rrens/shoplist/internal/config"
	"github.com/Rrens/shoplist/internal/repository/postgres"
	"github.com/joho/godotenv"
)

// Applies pending Postgres migrations. The sqlite backend bootstraps its own
// schema on open and does not need this.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Driver != "postgres" {
		fmt.Fprintf(os.Stderr, "migrate only applies to the postgres driver (configured: %s)\n", cfg.Database.Driver)
		os.Exit(1)
	}

	sourceURL := os.Getenv("MIGRATIONS_URL")
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}

	fmt.Printf("Applying migrations from %s to %s:%d...\n", sourceURL, cfg.Database.Host, cfg.Database.Port)
	if err := postgres.RunMigrations(cfg.Database.DSN(), sourceURL); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migrations applied")
}

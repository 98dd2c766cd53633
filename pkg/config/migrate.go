package config

import (
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func newMigrator() (*migrate.Migrate, error) {
	db, err := DB.DB()
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}
	return migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
}

// ExecuteMigrations runs all pending SQL migrations.
func ExecuteMigrations() {
	m, err := newMigrator()
	if err != nil {
		log.Fatal("Failed to create migrate instance:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("Database migrations completed successfully")
}

// RollbackMigration rolls back the last migration.
func RollbackMigration() {
	m, err := newMigrator()
	if err != nil {
		log.Fatal("Failed to create migrate instance:", err)
	}
	if err := m.Steps(-1); err != nil {
		log.Fatal("Failed to rollback migration:", err)
	}
	log.Println("Migration rolled back successfully")
}

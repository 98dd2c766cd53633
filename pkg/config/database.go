package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"assetpool/internal/models"
)

var DB *gorm.DB

// InitDB connects to postgres, migrates the schema and seeds the well-known
// accounts and roles.
func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db

	if err := MigrateModels(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	if err := SeedSystemRecords(DB); err != nil {
		log.Fatal("Failed to seed system records:", err)
	}
}

// MigrateModels runs AutoMigrate for every model. Shared with the sqlite
// test databases.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Asset{},
		&models.Listing{},
		&models.AcquisitionRecord{},
		&models.Pool{},
		&models.ContributorRecord{},
		&models.Proposal{},
		&models.Vote{},
		&models.ProposerRegistration{},
		&models.DevelopmentRecord{},
		&models.LedgerAccount{},
		&models.ClaimBalance{},
		&models.LedgerAllowlist{},
		&models.LedgerAllowance{},
		&models.RoleConfig{},
	)
}

// SeedSystemRecords puts the engine's own identity on the mint/burn
// allowlist and assigns the owner/operator/registrar roles from the
// environment when provided.
func SeedSystemRecords(db *gorm.DB) error {
	system := models.LedgerAllowlist{Address: "system", CanMint: true, CanBurn: true}
	if err := db.Where(models.LedgerAllowlist{Address: system.Address}).
		Attrs(system).FirstOrCreate(&system).Error; err != nil {
		return err
	}

	roles := map[string]string{
		models.RoleOwner:     os.Getenv("OWNER_ADDRESS"),
		models.RoleOperator:  os.Getenv("OPERATOR_ADDRESS"),
		models.RoleRegistrar: os.Getenv("REGISTRAR_ADDRESS"),
	}
	for role, address := range roles {
		if address == "" {
			continue
		}
		entry := models.RoleConfig{Role: role, Address: address}
		if err := db.Where(models.RoleConfig{Role: role, Address: address}).
			FirstOrCreate(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

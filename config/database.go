package config

import (
	"fmt"

	"github.com/Govind-619/OrderSphere/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the postgres connection, stores it in DB and migrates the schema.
func InitDB(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if !cfg.Server.IsProduction() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Client{},
		&models.Admin{},
		&models.Brand{},
		&models.Packaging{},
		&models.Product{},
		&models.Offer{},
		&models.OfferProduct{},
		&models.DraftOrder{},
		&models.DraftOrderItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.BlacklistedToken{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	DB = db
	return db, nil
}

package database

import (
	"fmt"
	"log"
	"time"

	"dokon-pos/internal/config"
	"dokon-pos/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Default departments seeded into an empty store, matching what a fresh
// shop install starts with.
var defaultCategories = []string{
	"Ichimliklar",
	"Shirinliklar",
	"Meva va sabzavotlar",
	"Go'sht mahsulotlari",
}

// Connect opens the configured database and syncs the schema. SQLite is
// the default: one shop, one machine, one writer. MySQL is for shops
// that point several tills at a shared server.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error

	switch cfg.DB.Driver {
	case "mysql":
		// Wait for the DB to be ready (docker-compose race)
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(mysql.Open(cfg.DB.DSN), gormCfg)
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DB.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want sqlite or mysql)", cfg.DB.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DB.Driver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedCategories(db); err != nil {
		return nil, err
	}

	log.Printf("✅ Connected to %s, schema synced", cfg.DB.Driver)
	return db, nil
}

// Migrate syncs the schema. Exposed separately so tests can run it
// against their own throwaway databases.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Return{},
		&models.ReturnItem{},
		&models.DailyReport{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, name := range defaultCategories {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

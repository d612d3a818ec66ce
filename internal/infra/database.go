package infra

import (
	"fmt"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// over every entity. The purchase flow relies on transactional multi-writes
// and atomic quantity increments, both of which need a store with real
// transactions — Postgres is the default.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates/updates all tables. Also used by the integration test
// suite against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Vendor{},
		&model.Product{},
		&model.Combo{},
		&model.ComboItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.ProductItem{},
		&model.Sale{},
		&model.SaleItem{},
		&model.ReturnEntry{},
		&model.ProfitSheet{},
		&model.ProfitSheetRow{},
	)
}

package infra

import (
	"fmt"

	"github.com/HostingCuenca/vet-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and brings the
// schema up to date (AutoMigrate plus the SQL patches GORM cannot express).
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
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates every table and applies the schema patches.
// Shared by the server, the seeder and the integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Owner{},
		&model.CashRegister{},
		&model.CashSession{},
		&model.CashMovement{},
		&model.Product{},
		&model.ServiceCatalog{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Receipt{},
		&model.DocumentSequence{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// express (partial indexes, CHECK constraints on existing tables).
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one OPEN session per register. Concurrent opens race on this index
		// and the loser gets SQLSTATE 23505.
		{"partial unique index on open sessions", `
CREATE UNIQUE INDEX IF NOT EXISTS uq_cash_sessions_open_register
    ON cash_sessions (cash_register_id)
    WHERE status = 'OPEN'`},
		{"movement amount must be positive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_cash_movements_amount_positive') THEN
    ALTER TABLE cash_movements
      ADD CONSTRAINT chk_cash_movements_amount_positive CHECK (amount > 0);
  END IF;
END $$`},
		{"session status domain", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_cash_sessions_status') THEN
    ALTER TABLE cash_sessions
      ADD CONSTRAINT chk_cash_sessions_status CHECK (status IN ('OPEN', 'CLOSED'));
  END IF;
END $$`},
		{"sale item references exactly one catalog entry", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_sale_items_single_ref') THEN
    ALTER TABLE sale_items
      ADD CONSTRAINT chk_sale_items_single_ref
      CHECK ((product_id IS NULL) <> (service_id IS NULL));
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}

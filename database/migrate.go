package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Unique index on quotations.quotation_number (backs conflict-retry allocation)
// - Basic CHECK constraints (non-negative money, revision >= 1)
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := AutoMigrate(tx); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE quotations      ALTER COLUMN sub_total   TYPE numeric(12,2)`,
			`ALTER TABLE quotations      ALTER COLUMN vat         TYPE numeric(12,2)`,
			`ALTER TABLE quotations      ALTER COLUMN grand_total TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items ALTER COLUMN price       TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_quotations_quotation_number ON quotations (quotation_number)`,
			`CREATE INDEX IF NOT EXISTS idx_quotations_opportunity ON quotations (opportunity_id)`,
			`CREATE INDEX IF NOT EXISTS idx_quotation_items_quotation ON quotation_items (quotation_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_quotation_snapshots_quotation_seq ON quotation_snapshots (quotation_id, seq_no)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'quotation_items'::regclass
					  AND conname  = 'chk_quotation_items_price_nonneg'
				) THEN
					ALTER TABLE quotation_items
					ADD CONSTRAINT chk_quotation_items_price_nonneg
					CHECK (price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'quotations'::regclass
					  AND conname  = 'chk_quotations_revision_positive'
				) THEN
					ALTER TABLE quotations
					ADD CONSTRAINT chk_quotations_revision_positive
					CHECK (revision >= 1);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}

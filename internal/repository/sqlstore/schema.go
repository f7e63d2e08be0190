package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id             VARCHAR(36) PRIMARY KEY,
		nom            TEXT NOT NULL,
		prenom         TEXT NOT NULL DEFAULT '',
		nom_entreprise TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL DEFAULT '',
		telephone      TEXT NOT NULL DEFAULT '',
		code_postal    TEXT NOT NULL DEFAULT '',
		rue            TEXT NOT NULL DEFAULT '',
		ville          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                    VARCHAR(36) PRIMARY KEY,
		client_id             VARCHAR(36) NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		order_number          TEXT,
		week_number           INTEGER NOT NULL,
		year                  INTEGER NOT NULL,
		delivery_week         INTEGER,
		delivery_year         INTEGER,
		day_of_week           TEXT,
		closure_days          TEXT,
		delivery_instructions TEXT,
		products              TEXT,
		total                 DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_client_week ON orders (client_id, year, week_number)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id             VARCHAR(36) PRIMARY KEY,
		nom            VARCHAR(255) NOT NULL,
		prenom         VARCHAR(255) NOT NULL DEFAULT '',
		nom_entreprise VARCHAR(255) NOT NULL DEFAULT '',
		email          VARCHAR(255) NOT NULL DEFAULT '',
		telephone      VARCHAR(64) NOT NULL DEFAULT '',
		code_postal    VARCHAR(16) NOT NULL DEFAULT '',
		rue            VARCHAR(255) NOT NULL DEFAULT '',
		ville          VARCHAR(255) NOT NULL DEFAULT '',
		created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                    VARCHAR(36) PRIMARY KEY,
		client_id             VARCHAR(36) NOT NULL,
		order_number          VARCHAR(64),
		week_number           INT NOT NULL,
		year                  INT NOT NULL,
		delivery_week         INT,
		delivery_year         INT,
		day_of_week           VARCHAR(32),
		closure_days          TEXT,
		delivery_instructions TEXT,
		products              LONGTEXT,
		total                 DOUBLE NOT NULL DEFAULT 0,
		created_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_orders_client_week (client_id, year, week_number),
		CONSTRAINT fk_orders_client FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := postgresSchema
	if db.DriverName() == DriverMySQL {
		statements = mysqlSchema
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}

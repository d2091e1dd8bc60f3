package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

type Config struct {
	// Driver is "mysql" or "sqlite".
	Driver       string
	DSN          string
	MaxOpenConns int
}

func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	switch {
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	case cfg.Driver == "sqlite":
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(20)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate creates the storefront tables. The DDL sticks to the subset
// shared by MySQL and SQLite; timestamps are unix milliseconds.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id               VARCHAR(36) PRIMARY KEY,
		owner_id         VARCHAR(64) NOT NULL,
		status           VARCHAR(16) NOT NULL,
		currency         VARCHAR(3)  NOT NULL,
		shipping_option  VARCHAR(32) NOT NULL,
		payment_method   VARCHAR(32) NOT NULL,
		shipping_address TEXT        NOT NULL,
		subtotal_amount  BIGINT      NOT NULL,
		vat_amount       BIGINT      NOT NULL,
		shipping_amount  BIGINT      NOT NULL,
		total_amount     BIGINT      NOT NULL,
		created_at       BIGINT      NOT NULL,
		updated_at       BIGINT      NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id                VARCHAR(36)  PRIMARY KEY,
		order_id          VARCHAR(36)  NOT NULL,
		item_id           VARCHAR(128) NOT NULL,
		slug              VARCHAR(128) NOT NULL,
		name              VARCHAR(255) NOT NULL,
		configuration     TEXT         NOT NULL,
		files             TEXT         NOT NULL,
		unit_amount       BIGINT       NOT NULL,
		quantity          INT          NOT NULL,
		line_total_amount BIGINT       NOT NULL,
		position          INT          NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id          VARCHAR(36)  PRIMARY KEY,
		owner_id    VARCHAR(64)  NOT NULL,
		label       VARCHAR(64)  NOT NULL,
		full_name   VARCHAR(255) NOT NULL,
		street      VARCHAR(255) NOT NULL,
		city        VARCHAR(128) NOT NULL,
		postal_code VARCHAR(16)  NOT NULL,
		country     VARCHAR(2)   NOT NULL,
		phone       VARCHAR(32)  NOT NULL,
		created_at  BIGINT       NOT NULL
	)`,
}

package database

import (
	"context"
	"database/sql"
	"log"
)

// Migrate creates the application tables when they do not exist yet.  Each
// statement is idempotent so the function is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username      VARCHAR(64)  NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role          VARCHAR(16)  NOT NULL,
			created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (username)
		)`,
		`CREATE TABLE IF NOT EXISTS trains (
			id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			train_number VARCHAR(32)  NOT NULL,
			train_name   VARCHAR(128) NOT NULL,
			travel_date  VARCHAR(32)  NOT NULL,
			travel_time  VARCHAR(32)  NOT NULL,
			origin       VARCHAR(64)  NOT NULL,
			destination  VARCHAR(64)  NOT NULL,
			created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_trains_number (train_number)
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			train_number   VARCHAR(32)  NOT NULL,
			username       VARCHAR(64)  NOT NULL,
			passenger_name VARCHAR(128) NOT NULL,
			gender         VARCHAR(8)   NOT NULL,
			class          VARCHAR(16)  NOT NULL,
			price          INT UNSIGNED NOT NULL,
			created_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_tickets_train_class (train_number, class),
			KEY idx_tickets_owner (username)
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			username   VARCHAR(64) NOT NULL,
			token_hash CHAR(64)    NOT NULL,
			expires_at DATETIME    NOT NULL,
			revoked_at DATETIME    NULL,
			created_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_refresh_hash (token_hash)
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin inserts the default administrator account when no row with that
// username exists.  The username primary key makes the insert idempotent:
// running it twice never produces two admin accounts.
func SeedAdmin(ctx context.Context, db *sql.DB, username, passwordHash string) error {
	res, err := db.ExecContext(ctx,
		"INSERT IGNORE INTO users (username, password_hash, role) VALUES (?,?,?)",
		username, passwordHash, "admin")
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Printf("seeded default admin account %q", username)
	}
	return nil
}

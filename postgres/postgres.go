// Package postgres binds auto-incrementing hashid fields to a Postgres
// sequence and records the encoding configuration so drift between the
// application and the database is caught at migration time.
package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/paraglidehq/hashid"
)

// Config is the encoding configuration as persisted in the database. The
// salt itself is never stored; SaltCheck is a SHA-256 fingerprint used
// only to detect a changed salt.
type Config struct {
	MinLength int
	Alphabet  string
	SaltCheck string
}

// ConfigFor derives the persisted form of a field configuration.
func ConfigFor(cfg hashid.Config) Config {
	c, err := hashid.NewCodec(cfg)
	if err == nil {
		cfg = c.Config()
	}
	sum := sha256.Sum256([]byte(cfg.Salt))
	return Config{
		MinLength: cfg.MinLength,
		Alphabet:  cfg.Alphabet,
		SaltCheck: hex.EncodeToString(sum[:]),
	}
}

// ErrConfigMismatch means the database was migrated under a different
// salt, alphabet, or minimum length than the application is running with.
var ErrConfigMismatch = errors.New("hashid: database config does not match application config")

// Migrate runs the idempotent hashid migration with the given
// configuration. If the database already holds a different configuration,
// returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	// Create config table
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _hashid_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			min_length int NOT NULL,
			alphabet text NOT NULL,
			salt_check text NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("hashid: create config table: %w", err)
	}

	// Check existing config
	var stored Config
	err = db.QueryRowContext(ctx, `SELECT min_length, alphabet, salt_check FROM _hashid_config`).
		Scan(&stored.MinLength, &stored.Alphabet, &stored.SaltCheck)
	if err == nil {
		// Config exists, validate it matches
		if stored != cfg {
			return fmt.Errorf("%w: db has min_length=%d alphabet=%q salt_check=%s, app has min_length=%d alphabet=%q salt_check=%s",
				ErrConfigMismatch, stored.MinLength, stored.Alphabet, stored.SaltCheck, cfg.MinLength, cfg.Alphabet, cfg.SaltCheck)
		}
	} else if errors.Is(err, sql.ErrNoRows) {
		// Insert config
		_, err = db.ExecContext(ctx, `INSERT INTO _hashid_config (min_length, alphabet, salt_check) VALUES ($1, $2, $3)`,
			cfg.MinLength, cfg.Alphabet, cfg.SaltCheck)
		if err != nil {
			return fmt.Errorf("hashid: insert config: %w", err)
		}
	} else {
		return fmt.Errorf("hashid: read config: %w", err)
	}

	// Sequence backing auto-incrementing hashid fields
	_, err = db.ExecContext(ctx, `CREATE SEQUENCE IF NOT EXISTS hashid_id_seq`)
	if err != nil {
		return fmt.Errorf("hashid: create sequence: %w", err)
	}

	return nil
}

// GetConfig reads the persisted hashid configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT min_length, alphabet, salt_check FROM _hashid_config`).
		Scan(&cfg.MinLength, &cfg.Alphabet, &cfg.SaltCheck)
	return cfg, err
}

// NextID allocates the next id for an auto-incrementing field from the
// database sequence.
func NextID(ctx context.Context, db *sql.DB) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `SELECT nextval('hashid_id_seq')`).Scan(&id)
	return id, err
}

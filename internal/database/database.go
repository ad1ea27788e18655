package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	"pos_order_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed schema.sql
var defaultSchema string

// PostgresConfig holds the connection settings read from DB_* variables.
type PostgresConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string // empty applies the embedded schema
}

// DSN renders the lib/pq keyword/value connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// OpenPostgres opens and pings the pool, then applies the schema.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	utils.LogInfo("Connected to PostgreSQL", map[string]interface{}{"host": cfg.Host, "port": cfg.Port, "dbname": cfg.Name})

	if err := applySchema(ctx, db, cfg.SchemaPath); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applySchema executes the schema file at schemaPath, or the embedded one.
// Statements are idempotent.
func applySchema(ctx context.Context, db *sql.DB, schemaPath string) error {
	content := defaultSchema
	if schemaPath != "" {
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
		}
		content = string(raw)
	}

	if _, err := db.ExecContext(ctx, content); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied", map[string]interface{}{"custom_path": schemaPath != ""})
	return nil
}

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/vaughan-dsouza/courses-api/internal/db/migrations"
)

// PoolConfig mirrors the DB_* settings from the environment.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// Open builds the connection pool without touching the network; use Ping
// to find out whether the database is actually reachable.
func Open(dsn string, pool PoolConfig) (*sqlx.DB, error) {
	// Parse DSN → pgx config struct
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	cfg.ConnectTimeout = 5 * time.Second

	// Create sql.DB using pgx's stdlib adapter
	sqlDB := stdlib.OpenDB(*cfg)

	// Wrap in sqlx for struct scanning
	db := sqlx.NewDb(sqlDB, "pgx")

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	return db, nil
}

// Ping runs the connectivity check and a trivial health query.
func Ping(ctx context.Context, db *sqlx.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db: failed to connect to Postgres: %w", err)
	}

	var tmp int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&tmp); err != nil {
		return fmt.Errorf("db: health check failed: %w", err)
	}

	return nil
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate creates the users and courses tables when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("db: goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("db: create schema: %w", err)
	}
	return nil
}

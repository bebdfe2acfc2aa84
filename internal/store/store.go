// Package store is the persistence layer for users and courses. A Store is
// built explicitly around a *sqlx.DB and handed to whoever needs it.
package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/courses-api/internal/db"
)

type Store struct {
	DB *sqlx.DB
	sb squirrel.StatementBuilderType
}

func New(conn *sqlx.DB) *Store {
	return &Store{
		DB: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.DB)
}

// Ping checks that the database is reachable at startup.
func (s *Store) Ping(ctx context.Context) error {
	return db.Ping(ctx, s.DB)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

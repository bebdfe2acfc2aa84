package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/courses-api/internal/models"
)

var userColumns = []string{"id", "first_name", "last_name", "email_address", "password", "created_at", "updated_at"}

// CreateUser validates the payload, hashes the password and inserts the row.
func (s *Store) CreateUser(ctx context.Context, in models.NewUser) (*models.User, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validationError(fieldMessages["password.max"])
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	query, args, err := s.sb.Insert("users").
		Columns("first_name", "last_name", "email_address", "password").
		Values(in.FirstName, in.LastName, in.EmailAddress, hash).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user: %w", err)
	}

	u := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.EmailAddress,
		Password:     hash,
	}

	err = s.DB.QueryRowxContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if isPgError(err, pgUniqueViolation) {
		return nil, uniquenessError(err, emailExistsMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

// UserByEmail loads the full user record, password hash included.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	query, args, err := s.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email_address": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}

	var u models.User
	err = s.DB.GetContext(ctx, &u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies store failures so callers can switch on them.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUniqueness
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUniqueness:
		return "uniqueness"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

var ErrNotFound = &Error{Kind: KindNotFound}

// Error is returned for every failure the caller is expected to recover
// from. Messages holds one human-readable entry per violated rule.
type Error struct {
	Kind     Kind
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return e.Kind.String() + ": " + strings.Join(e.Messages, "; ")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for wrapped not-found errors too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf reports the kind of err, KindUnknown for anything not produced by
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessagesOf returns the per-rule messages carried by err, if any.
func MessagesOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Messages
	}
	return nil
}

func validationError(messages ...string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

func uniquenessError(cause error, messages ...string) *Error {
	return &Error{Kind: KindUniqueness, Messages: messages, Err: cause}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

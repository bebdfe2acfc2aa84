package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vaughan-dsouza/courses-api/internal/models"
)

var courseColumns = []string{
	"c.id", "c.title", "c.description", "c.estimated_time", "c.materials_needed",
	"c.user_id", "c.created_at", "c.updated_at",
}

// ownerColumns land in Course.Owner through sqlx's dotted-name mapping.
var ownerColumns = []string{
	`u.id AS "owner.id"`,
	`u.first_name AS "owner.first_name"`,
	`u.last_name AS "owner.last_name"`,
	`u.email_address AS "owner.email_address"`,
}

func (s *Store) selectCourses() squirrel.SelectBuilder {
	return s.sb.Select(courseColumns...).
		Columns(ownerColumns...).
		From("courses c").
		Join("users u ON u.id = c.user_id")
}

// ListCourses returns every course with its owner. An empty table yields an
// empty, non-nil slice.
func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	query, args, err := s.selectCourses().OrderBy("c.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list courses: %w", err)
	}

	courses := []models.Course{}
	if err := s.DB.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return courses, nil
}

func (s *Store) CourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query, args, err := s.selectCourses().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select course: %w", err)
	}

	var c models.Course
	err = s.DB.GetContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateCourse(ctx context.Context, in models.NewCourse) (*models.Course, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	query, args, err := s.sb.Insert("courses").
		Columns("title", "description", "estimated_time", "materials_needed", "user_id").
		Values(in.Title, in.Description, in.EstimatedTime, in.MaterialsNeeded, in.UserID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert course: %w", err)
	}

	c := models.Course{
		Title:           in.Title,
		Description:     in.Description,
		EstimatedTime:   in.EstimatedTime,
		MaterialsNeeded: in.MaterialsNeeded,
		UserID:          in.UserID,
	}

	err = s.DB.QueryRowxContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if isPgError(err, pgForeignKeyViolation) {
		return nil, validationError(fieldMessages["userId.notfound"])
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &c, nil
}

// UpdateCourse applies the provided fields of patch to course id. The merged
// record must still pass validation.
func (s *Store) UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) error {
	query, args, err := s.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build select course: %w", err)
	}

	var c models.Course
	err = s.DB.GetContext(ctx, &c, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	patch.Apply(&c)
	if err := Validate(c); err != nil {
		return err
	}

	query, args, err = s.sb.Update("courses").
		Set("title", c.Title).
		Set("description", c.Description).
		Set("estimated_time", c.EstimatedTime).
		Set("materials_needed", c.MaterialsNeeded).
		Set("user_id", c.UserID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update course: %w", err)
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if isPgError(err, pgForeignKeyViolation) {
		return validationError(fieldMessages["userId.notfound"])
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRow(res)
}

func (s *Store) DeleteCourse(ctx context.Context, id int64) error {
	query, args, err := s.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete course: %w", err)
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

package models

import (
	"encoding/json"
	"time"
)

type Course struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title" validate:"required,notblank"`
	Description     string     `db:"description" json:"description" validate:"required,notblank"`
	EstimatedTime   *string    `db:"estimated_time" json:"estimatedTime"`
	MaterialsNeeded *string    `db:"materials_needed" json:"materialsNeeded"`
	UserID          int64      `db:"user_id" json:"userId" validate:"required"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
	Owner           PublicUser `db:"owner" json:"user"`
}

type NewCourse struct {
	Title           string  `json:"title" validate:"required,notblank"`
	Description     string  `json:"description" validate:"required,notblank"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
	UserID          int64   `json:"userId" validate:"required"`
}

// Optional tells a field that was left out of a JSON object apart from one
// sent as null. Set is true whenever the key was present; Value is nil for null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// orZero returns the value, or T's zero value for null.
func (o Optional[T]) orZero() T {
	var zero T
	if o.Value == nil {
		return zero
	}
	return *o.Value
}

// CoursePatch carries a partial update. Fields absent from the request are
// left untouched; a null clears the field, which required fields then reject.
type CoursePatch struct {
	Title           Optional[string] `json:"title"`
	Description     Optional[string] `json:"description"`
	EstimatedTime   Optional[string] `json:"estimatedTime"`
	MaterialsNeeded Optional[string] `json:"materialsNeeded"`
	UserID          Optional[int64]  `json:"userId"`
}

// Apply copies every provided field onto c.
func (p CoursePatch) Apply(c *Course) {
	if p.Title.Set {
		c.Title = p.Title.orZero()
	}
	if p.Description.Set {
		c.Description = p.Description.orZero()
	}
	if p.EstimatedTime.Set {
		c.EstimatedTime = p.EstimatedTime.Value
	}
	if p.MaterialsNeeded.Set {
		c.MaterialsNeeded = p.MaterialsNeeded.Value
	}
	if p.UserID.Set {
		c.UserID = p.UserID.orZero()
	}
}

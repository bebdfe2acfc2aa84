package models

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	EmailAddress string    `db:"email_address" json:"emailAddress"`
	Password     string    `db:"password" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Public strips everything but the fields a client may see.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}

type PublicUser struct {
	ID           int64  `db:"id" json:"id"`
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	EmailAddress string `db:"email_address" json:"emailAddress"`
}

// NewUser is the create-account payload. Password is plaintext here and is
// hashed by the store before it is written.
type NewUser struct {
	FirstName    string `json:"firstName" validate:"required,notblank"`
	LastName     string `json:"lastName" validate:"required,notblank"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required,notblank,max=72"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the local mirror of an account owned by the identity provider.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmail reports whether the account can receive email.
func (u *User) HasEmail() bool {
	return u != nil && u.Email != ""
}

package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
)

// UserRepository defines persistence for the local mirror of identity-provider accounts.
type UserRepository interface {
	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Upsert creates the user or refreshes its email and name.
	Upsert(ctx context.Context, user *entity.User) error
}

// IdentityProvider maps a user id to the address reminders are delivered to.
type IdentityProvider interface {
	// GetUserEmail returns the user's email, or domainerror.ErrUserNotFound when none is on file.
	GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error)
}

// IdentityCache drops cached identity lookups after the mirror changes.
type IdentityCache interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

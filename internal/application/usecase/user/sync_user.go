// Package user keeps the local mirror of identity-provider accounts current.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
)

// SyncUserInput carries the identity claims of an authenticated request.
type SyncUserInput struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// SyncUserUseCase records the account behind a verified token so that the reminder run can resolve
// the address later.
type SyncUserUseCase struct {
	userRepo adapter.UserRepository
	cache    adapter.IdentityCache
}

// NewSyncUserUseCase creates a new SyncUserUseCase instance. cache may be nil.
func NewSyncUserUseCase(userRepo adapter.UserRepository, cache adapter.IdentityCache) *SyncUserUseCase {
	return &SyncUserUseCase{
		userRepo: userRepo,
		cache:    cache,
	}
}

// Execute creates the mirror row or refreshes its email. Claims without an email are ignored.
func (uc *SyncUserUseCase) Execute(ctx context.Context, input SyncUserInput) error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil
	}

	existing, err := uc.userRepo.FindByID(ctx, input.UserID)
	switch {
	case err == nil:
		if existing.Email == email {
			return nil
		}
	case errors.Is(err, domainerror.ErrUserNotFound):
		existing = &entity.User{ID: input.UserID, Name: strings.TrimSpace(input.Name), CreatedAt: time.Now().UTC()}
	default:
		return fmt.Errorf("failed to find user: %w", err)
	}

	existing.Email = email
	if err := uc.userRepo.Upsert(ctx, existing); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			slog.Warn("Failed to invalidate identity cache", "user_id", input.UserID, "error", err)
		}
	}

	slog.Info("User mirror updated", "user_id", input.UserID)
	return nil
}

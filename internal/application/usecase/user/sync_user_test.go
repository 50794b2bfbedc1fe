package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*entity.User
	upserts int
	err     error
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, u *entity.User) error {
	f.upserts++
	f.users[u.ID] = u
	return nil
}

type fakeCache struct {
	invalidated []uuid.UUID
}

func (f *fakeCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}

func TestSyncUserUseCase(t *testing.T) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	cache := &fakeCache{}
	uc := NewSyncUserUseCase(repo, cache)
	ctx := context.Background()
	userID := uuid.New()

	if err := uc.Execute(ctx, SyncUserInput{UserID: userID, Email: "anna@example.com", Name: "Anna"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u := repo.users[userID]; u == nil || u.Email != "anna@example.com" || u.Name != "Anna" {
		t.Fatalf("expected user to be created, got %+v", u)
	}

	if err := uc.Execute(ctx, SyncUserInput{UserID: userID, Email: "anna@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.upserts != 1 {
		t.Errorf("expected unchanged email to skip the write, got %d upserts", repo.upserts)
	}

	if err := uc.Execute(ctx, SyncUserInput{UserID: userID, Email: "anna@new.example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u := repo.users[userID]; u.Email != "anna@new.example.com" || u.Name != "Anna" {
		t.Errorf("expected email refreshed and name kept, got %+v", u)
	}
	if len(cache.invalidated) != 2 {
		t.Errorf("expected 2 cache invalidations, got %d", len(cache.invalidated))
	}

	if err := uc.Execute(ctx, SyncUserInput{UserID: uuid.New()}); err != nil {
		t.Errorf("expected claims without email to be ignored, got %v", err)
	}
}

func TestSyncUserUseCase_StoreError(t *testing.T) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}, err: errors.New("db down")}
	uc := NewSyncUserUseCase(repo, nil)

	if err := uc.Execute(context.Background(), SyncUserInput{UserID: uuid.New(), Email: "a@example.com"}); err == nil {
		t.Error("expected error")
	}
}

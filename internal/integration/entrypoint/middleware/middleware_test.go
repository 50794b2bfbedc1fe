package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/application/usecase/user"
	domainerror "github.com/payontime/backend/internal/domain/error"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTokenService struct {
	claims *adapter.TokenClaims
	err    error
}

func (f *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return f.claims, f.err
}

type fakeSyncer struct {
	inputs []user.SyncUserInput
}

func (f *fakeSyncer) Execute(ctx context.Context, input user.SyncUserInput) error {
	f.inputs = append(f.inputs, input)
	return errors.New("ignored")
}

func serve(handler gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := gin.New()
	router.Any("/", handler, func(c *gin.Context) {
		if id, ok := GetUserIDFromContext(c); ok {
			c.String(http.StatusOK, id.String())
			return
		}
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		header         string
		service        *fakeTokenService
		expectedStatus int
		expectSync     bool
	}{
		{"missing header", "", &fakeTokenService{}, http.StatusUnauthorized, false},
		{"wrong scheme", "Basic abc", &fakeTokenService{}, http.StatusUnauthorized, false},
		{"empty token", "Bearer ", &fakeTokenService{}, http.StatusUnauthorized, false},
		{"invalid token", "Bearer abc", &fakeTokenService{err: domainerror.ErrInvalidToken}, http.StatusUnauthorized, false},
		{
			name:           "valid token",
			header:         "Bearer abc",
			service:        &fakeTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "anna@example.com"}},
			expectedStatus: http.StatusOK,
			expectSync:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &fakeSyncer{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := serve(NewAuthMiddleware(tt.service, syncer).Authenticate(), req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectSync {
				if len(syncer.inputs) != 1 || syncer.inputs[0].Email != "anna@example.com" {
					t.Errorf("expected one sync call, got %+v", syncer.inputs)
				}
				if w.Body.String() != userID.String() {
					t.Errorf("expected user id in context, got %q", w.Body.String())
				}
			} else if len(syncer.inputs) != 0 {
				t.Error("expected no sync call")
			}
		})
	}
}

func TestRequireCronSecret(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		header         string
		expectedStatus int
	}{
		{"check disabled", "", "", http.StatusOK},
		{"matching secret", "s3cret", "s3cret", http.StatusOK},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"wrong secret", "s3cret", "guess", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set(CronSecretHeader, tt.header)
			}
			w := serve(RequireCronSecret(tt.secret), req)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)
	now := time.Date(2024, time.May, 7, 6, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i, expected := range []bool{true, true, false} {
		if got := rl.allow("10.0.0.1"); got != expected {
			t.Errorf("attempt %d: expected %v, got %v", i+1, expected, got)
		}
	}
	if !rl.allow("10.0.0.2") {
		t.Error("expected other client to be allowed")
	}

	now = now.Add(time.Minute + time.Second)
	if !rl.allow("10.0.0.1") {
		t.Error("expected window reset")
	}

	rl.Reset()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	for i := 0; i < 2; i++ {
		if w := serve(rl.Middleware(), req); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}
	if w := serve(rl.Middleware(), req); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

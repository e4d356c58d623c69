package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/study-service/internal/config"
	"github.com/spec-kit/study-service/internal/domain"
	apperrors "github.com/spec-kit/study-service/pkg/util"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, page, perPage int) (int, []*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return len(r.users), users, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 360,
			BcryptCost:            4,
		},
	}
	return NewAuthService(cfg, repo, nil), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", nil)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)

	principal, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.SubjectID)
	assert.Equal(t, domain.RoleUser, principal.Role)

	loggedIn, _, _, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", nil)
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Other", "alice@example.com", "password456", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong_password", email: "alice@example.com", password: "nope"},
		{name: "unknown_email", email: "bob@example.com", password: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.Login(ctx, tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
		})
	}
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", nil)
	require.NoError(t, err)

	newPassword := "password456"
	_, err = svc.UpdateProfile(ctx, user.ID, nil, &newPassword, nil)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "password123")
	require.Error(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", newPassword)
	require.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.Empty(t, repo.users)

	err = svc.DeleteUser(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

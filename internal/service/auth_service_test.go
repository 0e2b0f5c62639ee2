package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserStore implements UserStore for testing.
type fakeUserStore struct {
	users     map[string]*models.User
	lookupErr error
	updateErr error
}

func newFakeUserStore(t *testing.T, username, password string) *fakeUserStore {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &fakeUserStore{users: map[string]*models.User{
		username: {ID: 1, Username: username, Password: hash},
	}}
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, u := range f.users {
		if u.ID == id {
			u.Password = passwordHash
			return nil
		}
	}
	return models.ErrUserNotFound
}

func newTestService(t *testing.T, store UserStore) (*AuthService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("service-test-secret", time.Hour)
	require.NoError(t, err)
	return NewAuthService(store, tokens, zap.NewNop()), tokens
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeUserStore(t, "admin", "admin123")
	svc, tokens := newTestService(t, store)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "admin123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "admin", "")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_LoginStoreError(t *testing.T) {
	store := newFakeUserStore(t, "admin", "admin123")
	store.lookupErr = errors.New("database is locked")
	svc, _ := newTestService(t, store)

	_, err := svc.Login(context.Background(), "admin", "admin123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthService_ChangePassword(t *testing.T) {
	store := newFakeUserStore(t, "admin", "admin123")
	svc, tokens := newTestService(t, store)
	ctx := context.Background()

	oldToken, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, 1, "wrong", "n3w-pass")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, 99, "admin123", "n3w-pass")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	require.NoError(t, svc.ChangePassword(ctx, 1, "admin123", "n3w-pass"))

	_, err = svc.Login(ctx, "admin", "admin123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "n3w-pass")
	assert.NoError(t, err)

	_, err = tokens.Verify(oldToken)
	assert.NoError(t, err, "tokens issued before the change stay valid until expiry")
}

func TestAuthService_ResetPassword(t *testing.T) {
	store := newFakeUserStore(t, "admin", "admin123")
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.ResetPassword(ctx, "admin", "reset-pass"))
	_, err := svc.Login(ctx, "admin", "reset-pass")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "ghost", "x"), models.ErrUserNotFound)
}

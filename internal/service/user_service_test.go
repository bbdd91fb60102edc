package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
)

type mockUserRepo struct {
	users       map[string]*models.User
	updateErr   error
	revokeErr   error
	revokedFor  string
	newHash     string
	findByIDErr error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id, fullName string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.FullName = fullName
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.newHash = hash
	m.users[id].PasswordHash = hash
	return nil
}

func (m *mockUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedFor = userID
	return m.revokeErr
}

func newUserFixture(t *testing.T, password string) (*UserService, *mockUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "ana@example.com", FullName: "Ana", PasswordHash: string(hash), Active: true},
	}}
	return NewUserService(repo, nil, zap.NewNop(), bcrypt.MinCost), repo
}

func TestUserServiceGet(t *testing.T) {
	svc, _ := newUserFixture(t, "password123")

	user, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = svc.Get(context.Background(), "ghost")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestUserServiceUpdateProfileTrims(t *testing.T) {
	svc, _ := newUserFixture(t, "password123")

	user, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{FullName: "  Ana Lima "})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", user.FullName)
}

func TestUserServiceUpdateProfileStoreFailure(t *testing.T) {
	svc, repo := newUserFixture(t, "password123")
	repo.updateErr = errors.New("db down")

	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{FullName: "Ana"})
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestUserServiceChangePassword(t *testing.T) {
	svc, repo := newUserFixture(t, "password123")

	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password-1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", repo.revokedFor)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.newHash), []byte("new-password-1")))
}

func TestUserServiceChangePasswordWrongCurrent(t *testing.T) {
	svc, repo := newUserFixture(t, "password123")

	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "new-password-1"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.newHash)
	assert.Empty(t, repo.revokedFor)
}

func TestUserServiceChangePasswordValidation(t *testing.T) {
	svc, _ := newUserFixture(t, "password123")

	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "short"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceChangePasswordSurvivesRevokeFailure(t *testing.T) {
	svc, repo := newUserFixture(t, "password123")
	repo.revokeErr = errors.New("db down")

	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password-1"})
	assert.NoError(t, err)
}

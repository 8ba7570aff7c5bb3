package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/state"
	"github.com/ardaguler/eip/store"
)

func newAuthService(t *testing.T) (AuthService, UserService, *state.State, *store.Store) {
	t.Helper()
	ctx := context.Background()
	st := setupStore(t)

	users, err := NewUserService(ctx, st)
	require.NoError(t, err)

	appState, err := state.New(ctx, st)
	require.NoError(t, err)

	auth, err := NewAuthService(users, appState, "admin@eip.com", "admin-secret", "test-jwt-secret", 1)
	require.NoError(t, err)
	return auth, users, appState, st
}

func TestAuthService_SignupLogsIn(t *testing.T) {
	auth, _, appState, _ := newAuthService(t)
	ctx := context.Background()

	result, err := auth.Signup(ctx, &models.SignupRequest{
		Name: "Ali", Email: "ali@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ali@example.com", result.User.Email)
	assert.False(t, result.User.IsAdmin)

	// Signup sonrası kalıcı oturum kurulmuş olmalı
	session := appState.Session()
	require.NotNil(t, session)
	assert.Equal(t, "ali@example.com", session.Email)
}

func TestAuthService_SignupWithAdminEmailRejected(t *testing.T) {
	auth, _, _, _ := newAuthService(t)

	_, err := auth.Signup(context.Background(), &models.SignupRequest{
		Name: "Fake", Email: "admin@eip.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestAuthService_LoginUser(t *testing.T) {
	auth, _, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, &models.SignupRequest{
		Name: "Ali", Email: "ali@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))

	result, err := auth.Login(ctx, &models.LoginRequest{Email: "ali@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.User.ID)

	_, err = auth.Login(ctx, &models.LoginRequest{Email: "ali@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	auth, _, appState, _ := newAuthService(t)
	ctx := context.Background()

	result, err := auth.Login(ctx, &models.LoginRequest{Email: "admin@eip.com", Password: "admin-secret"})
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)
	assert.Equal(t, "Administrator", result.User.Name)
	assert.Empty(t, result.User.ID)
	assert.True(t, appState.IsAdmin())

	_, err = auth.Login(ctx, &models.LoginRequest{Email: "admin@eip.com", Password: "nope"})
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthService_LoginBannedUser(t *testing.T) {
	auth, users, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, &models.SignupRequest{
		Name: "Ali", Email: "ali@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx))
	require.NoError(t, users.Ban(ctx, "ali@example.com"))

	_, err = auth.Login(ctx, &models.LoginRequest{Email: "ali@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, pkg.ErrBanned)
}

func TestAuthService_Logout(t *testing.T) {
	auth, _, appState, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, &models.LoginRequest{Email: "admin@eip.com", Password: "admin-secret"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))
	assert.Nil(t, appState.Session())

	// Oturum yokken logout da hatasız
	require.NoError(t, auth.Logout(ctx))
}

func TestAuthService_ValidateToken(t *testing.T) {
	auth, _, _, _ := newAuthService(t)
	ctx := context.Background()

	result, err := auth.Signup(ctx, &models.SignupRequest{
		Name: "Ali", Email: "ali@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", claims.Email)
	assert.Equal(t, "Ali", claims.Name)
	assert.Equal(t, result.User.ID, claims.Subject)
	assert.False(t, claims.IsAdmin)

	_, err = auth.ValidateToken("garbage.token.here")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestAuthService_TokenFromDifferentSecretRejected(t *testing.T) {
	auth1, _, _, _ := newAuthService(t)
	ctx := context.Background()

	st := setupStore(t)
	users, err := NewUserService(ctx, st)
	require.NoError(t, err)
	appState, err := state.New(ctx, st)
	require.NoError(t, err)
	auth2, err := NewAuthService(users, appState, "admin@eip.com", "admin-secret", "other-secret", 1)
	require.NoError(t, err)

	result, err := auth1.Login(ctx, &models.LoginRequest{Email: "admin@eip.com", Password: "admin-secret"})
	require.NoError(t, err)

	_, err = auth2.ValidateToken(result.Token)
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

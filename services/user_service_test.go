package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	s, err := NewUserService(context.Background(), setupStore(t))
	require.NoError(t, err)
	return s
}

func signup(t *testing.T, s UserService, name, email string) *models.User {
	t.Helper()
	user, err := s.Create(context.Background(), &models.SignupRequest{
		Name: name, Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return user
}

func TestUserService_Create(t *testing.T) {
	s := newUserService(t)

	user := signup(t, s, "Ali", "ali@example.com")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ali", user.Name)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.JoinDate.IsZero())
}

func TestUserService_CreateValidation(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{"empty name", models.SignupRequest{Email: "a@b.com", Password: "secret1"}},
		{"invalid email", models.SignupRequest{Name: "A", Email: "not-an-email", Password: "secret1"}},
		{"short password", models.SignupRequest{Name: "A", Email: "a@b.com", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, &tt.req)
			assert.ErrorIs(t, err, pkg.ErrBadRequest)
		})
	}

	// Geçersiz denemeler koleksiyonu büyütmemiş olmalı
	assert.Empty(t, s.List(ctx))
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	signup(t, s, "Ali", "ali@example.com")

	_, err := s.Create(ctx, &models.SignupRequest{
		Name: "Other", Email: "ali@example.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, pkg.ErrAlreadyExists)
	assert.Len(t, s.List(ctx), 1)
}

func TestUserService_Authenticate(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	signup(t, s, "Ali", "ali@example.com")

	user, err := s.Authenticate(ctx, "ali@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ali", user.Name)

	_, err = s.Authenticate(ctx, "ali@example.com", "wrong")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)

	_, err = s.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, pkg.ErrUnauthorized)
}

func TestUserService_BanBlocksAuthenticate(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	signup(t, s, "Ali", "ali@example.com")
	require.NoError(t, s.Ban(ctx, "ali@example.com"))

	// Şifre doğru olsa bile banlı kullanıcı giremez
	_, err := s.Authenticate(ctx, "ali@example.com", "secret1")
	assert.ErrorIs(t, err, pkg.ErrBanned)
	assert.True(t, s.IsBanned("ali@example.com"))

	// Unban sonrası giriş tekrar çalışır
	require.NoError(t, s.Unban(ctx, "ali@example.com"))
	_, err = s.Authenticate(ctx, "ali@example.com", "secret1")
	assert.NoError(t, err)
}

func TestUserService_BanUnbanIdempotent(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	require.NoError(t, s.Ban(ctx, "x@example.com"))
	require.NoError(t, s.Ban(ctx, "x@example.com"))
	assert.Equal(t, 1, s.Stats().BannedUsers)

	require.NoError(t, s.Unban(ctx, "x@example.com"))
	require.NoError(t, s.Unban(ctx, "x@example.com"))
	assert.Zero(t, s.Stats().BannedUsers)
}

func TestUserService_SurvivesRestart(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	s1, err := NewUserService(ctx, st)
	require.NoError(t, err)
	signup(t, s1, "Ali", "ali@example.com")
	require.NoError(t, s1.Ban(ctx, "ali@example.com"))

	// Aynı store'dan yeni instance — koleksiyonlar geri gelmeli
	s2, err := NewUserService(ctx, st)
	require.NoError(t, err)
	assert.Len(t, s2.List(ctx), 1)
	assert.True(t, s2.IsBanned("ali@example.com"))
}

func TestUserService_Stats(t *testing.T) {
	s := newUserService(t)
	ctx := context.Background()

	signup(t, s, "A", "a@example.com")
	signup(t, s, "B", "b@example.com")
	require.NoError(t, s.Ban(ctx, "b@example.com"))

	stats := s.Stats()
	assert.Equal(t, models.UserStats{TotalUsers: 2, BannedUsers: 1, ActiveUsers: 1}, stats)
}

func TestFilterUsers(t *testing.T) {
	users := []models.User{
		{Name: "Ali Veli", Email: "ali@example.com"},
		{Name: "Ayse", Email: "ayse@example.com"},
		{Name: "Mehmet", Email: "mehmet@other.org"},
	}
	banned := []string{"ayse@example.com"}

	t.Run("search matches name or email", func(t *testing.T) {
		out := FilterUsers(users, banned, "ALI", "all")
		require.Len(t, out, 1)
		assert.Equal(t, "Ali Veli", out[0].Name)

		out = FilterUsers(users, banned, "example.com", "all")
		assert.Len(t, out, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		assert.Len(t, FilterUsers(users, banned, "", "active"), 2)
		assert.Len(t, FilterUsers(users, banned, "", "banned"), 1)
		assert.Len(t, FilterUsers(users, banned, "", "all"), 3)
	})

	t.Run("combined", func(t *testing.T) {
		out := FilterUsers(users, banned, "ayse", "active")
		assert.Empty(t, out)
	})
}

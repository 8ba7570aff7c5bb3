package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/store"
)

func TestActivityService_GetComputesDaysActive(t *testing.T) {
	s := NewActivityService(setupStore(t))
	ctx := context.Background()

	fresh := &models.User{ID: "u1", JoinDate: time.Now().UTC()}
	activity, err := s.Get(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, 1, activity.DaysActive) // en az 1

	old := &models.User{ID: "u2", JoinDate: time.Now().UTC().AddDate(0, 0, -10)}
	activity, err = s.Get(ctx, old)
	require.NoError(t, err)
	assert.Equal(t, 10, activity.DaysActive)
}

func TestActivityService_MarkTipReadIdempotent(t *testing.T) {
	s := NewActivityService(setupStore(t))
	ctx := context.Background()

	a, err := s.MarkTipRead(ctx, "u1", "tip-1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.TipsRead)

	a, err = s.MarkTipRead(ctx, "u1", "tip-1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.TipsRead)

	a, err = s.MarkTipRead(ctx, "u1", "tip-2")
	require.NoError(t, err)
	assert.Equal(t, 2, a.TipsRead)
	assert.Equal(t, []string{"tip-1", "tip-2"}, a.ReadTips)
}

func TestActivityService_RecordFileAccessIdempotent(t *testing.T) {
	s := NewActivityService(setupStore(t))
	ctx := context.Background()

	a, err := s.RecordFileAccess(ctx, "u1", "file-1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.FilesAccessed)

	a, err = s.RecordFileAccess(ctx, "u1", "file-1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.FilesAccessed)
	assert.True(t, a.HasAccessedFile("file-1"))
}

func TestActivityService_UsersAreIsolated(t *testing.T) {
	st := setupStore(t)
	s := NewActivityService(st)
	ctx := context.Background()

	_, err := s.MarkTipRead(ctx, "u1", "tip-1")
	require.NoError(t, err)

	a, err := s.MarkTipRead(ctx, "u2", "tip-9")
	require.NoError(t, err)
	assert.Equal(t, 1, a.TipsRead)
	assert.False(t, a.HasReadTip("tip-1"))

	// Kayıt kullanıcı bazlı key altında yaşar
	var raw models.UserActivity
	require.NoError(t, st.Load(ctx, store.ActivityKey("u1"), &raw))
	assert.Equal(t, []string{"tip-1"}, raw.ReadTips)
}

func TestActivityService_SurvivesRestart(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	s1 := NewActivityService(st)
	_, err := s1.MarkTipRead(ctx, "u1", "tip-1")
	require.NoError(t, err)
	_, err = s1.RecordFileAccess(ctx, "u1", "file-1")
	require.NoError(t, err)

	s2 := NewActivityService(st)
	user := &models.User{ID: "u1", JoinDate: time.Now().UTC()}
	a, err := s2.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, a.TipsRead)
	assert.Equal(t, 1, a.FilesAccessed)
}

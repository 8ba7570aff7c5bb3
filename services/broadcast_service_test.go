package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/ws"
)

// fakePublisher, hub yerine geçen test publisher'ı.
type fakePublisher struct {
	all    []ws.Event
	toUser map[string][]ws.Event
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{toUser: make(map[string][]ws.Event)}
}

func (f *fakePublisher) BroadcastToAll(event ws.Event) {
	f.all = append(f.all, event)
}

func (f *fakePublisher) BroadcastToUser(userID string, event ws.Event) {
	f.toUser[userID] = append(f.toUser[userID], event)
}

func newBroadcastService(t *testing.T, hub ws.EventPublisher) BroadcastService {
	t.Helper()
	s, err := NewBroadcastService(context.Background(), setupStore(t), hub)
	require.NoError(t, err)
	return s
}

func TestBroadcastService_Send(t *testing.T) {
	hub := newFakePublisher()
	s := newBroadcastService(t, hub)
	ctx := context.Background()

	b, err := s.Send(ctx, &models.SendBroadcastRequest{
		Title: "Maintenance", Message: "Tonight at 22:00",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, b.Priority) // boş öncelik default'a düşer
	assert.Equal(t, "admin", b.Sender)
	assert.Empty(t, b.Read)

	// Gönderim tüm bağlı client'lara event düşürmeli
	require.Len(t, hub.all, 1)
	assert.Equal(t, ws.OpBroadcastNew, hub.all[0].Op)

	_, err = s.Send(ctx, &models.SendBroadcastRequest{Title: "", Message: "x"}, "admin")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestBroadcastService_SendRejectsUnknownPriority(t *testing.T) {
	s := newBroadcastService(t, nil)

	_, err := s.Send(context.Background(), &models.SendBroadcastRequest{
		Title: "T", Message: "M", Priority: "urgent",
	}, "admin")
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestBroadcastService_MarkReadIdempotent(t *testing.T) {
	s := newBroadcastService(t, nil)
	ctx := context.Background()

	b, err := s.Send(ctx, &models.SendBroadcastRequest{Title: "T", Message: "M"}, "admin")
	require.NoError(t, err)

	require.NoError(t, s.MarkRead(ctx, b.ID, "ali@example.com"))
	require.NoError(t, s.MarkRead(ctx, b.ID, "ali@example.com"))

	list := s.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"ali@example.com"}, list[0].Read)

	assert.ErrorIs(t, s.MarkRead(ctx, "missing", "ali@example.com"), pkg.ErrNotFound)
}

func TestBroadcastService_UnreadFor(t *testing.T) {
	s := newBroadcastService(t, nil)
	ctx := context.Background()

	b1, err := s.Send(ctx, &models.SendBroadcastRequest{Title: "One", Message: "m"}, "admin")
	require.NoError(t, err)
	_, err = s.Send(ctx, &models.SendBroadcastRequest{Title: "Two", Message: "m"}, "admin")
	require.NoError(t, err)

	assert.Len(t, s.UnreadFor(ctx, "ali@example.com"), 2)

	require.NoError(t, s.MarkRead(ctx, b1.ID, "ali@example.com"))
	unread := s.UnreadFor(ctx, "ali@example.com")
	require.Len(t, unread, 1)
	assert.Equal(t, "Two", unread[0].Title)

	// Başka okuyucu etkilenmez
	assert.Len(t, s.UnreadFor(ctx, "ayse@example.com"), 2)
}

func TestBroadcastService_SurvivesRestart(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()

	s1, err := NewBroadcastService(ctx, st, nil)
	require.NoError(t, err)
	b, err := s1.Send(ctx, &models.SendBroadcastRequest{Title: "T", Message: "M"}, "admin")
	require.NoError(t, err)
	require.NoError(t, s1.MarkRead(ctx, b.ID, "ali@example.com"))

	s2, err := NewBroadcastService(ctx, st, nil)
	require.NoError(t, err)
	list := s2.List(ctx)
	require.Len(t, list, 1)
	assert.True(t, list[0].ReadBy("ali@example.com"))
}

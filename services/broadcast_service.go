package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/store"
	"github.com/ardaguler/eip/ws"
)

// BroadcastService, duyuru koleksiyonunun sahibi.
// Duyurular gönderildikten sonra silinmez ve düzenlenmez; sadece
// okuyucu seti (Read) monoton büyür.
type BroadcastService interface {
	// Send, yeni bir duyuru oluşturur ve bağlı client'lara event yayınlar.
	Send(ctx context.Context, req *models.SendBroadcastRequest, sender string) (*models.Broadcast, error)

	// MarkRead, okuyucuyu duyurunun Read setine ekler. Idempotent:
	// ikinci çağrı seti değiştirmez. Duyuru yoksa pkg.ErrNotFound.
	MarkRead(ctx context.Context, id, reader string) error

	// UnreadFor, okuyucunun henüz görmediği duyuruları döner.
	UnreadFor(ctx context.Context, reader string) []models.Broadcast

	// List, tüm duyuruların yeniden-eskiye sıralı kopyasını döner.
	List(ctx context.Context) []models.Broadcast
}

type broadcastService struct {
	mu         sync.RWMutex
	st         *store.Store
	hub        ws.EventPublisher
	broadcasts []models.Broadcast
}

// NewBroadcastService, duyuru koleksiyonunu hydrate eder.
// hub nil olabilir (testlerde) — event yayını o durumda atlanır.
func NewBroadcastService(ctx context.Context, st *store.Store, hub ws.EventPublisher) (BroadcastService, error) {
	s := &broadcastService{st: st, hub: hub}
	if err := st.Load(ctx, store.KeyBroadcasts, &s.broadcasts); err != nil {
		return nil, fmt.Errorf("failed to load broadcasts: %w", err)
	}
	return s, nil
}

func (s *broadcastService) Send(ctx context.Context, req *models.SendBroadcastRequest, sender string) (*models.Broadcast, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if sender == "" {
		sender = "admin"
	}

	broadcast := models.Broadcast{
		ID:       newID(),
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
		Sender:   sender,
		SentDate: time.Now().UTC(),
		Read:     []string{},
	}

	s.mu.Lock()
	s.broadcasts = append(s.broadcasts, broadcast)
	if err := s.st.Save(ctx, store.KeyBroadcasts, s.broadcasts); err != nil {
		s.broadcasts = s.broadcasts[:len(s.broadcasts)-1]
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastToAll(ws.Event{Op: ws.OpBroadcastNew, Data: broadcast})
	}

	return &broadcast, nil
}

func (s *broadcastService) MarkRead(ctx context.Context, id, reader string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.broadcasts {
		if s.broadcasts[i].ID != id {
			continue
		}

		if s.broadcasts[i].ReadBy(reader) {
			return nil
		}

		s.broadcasts[i].Read = append(s.broadcasts[i].Read, reader)
		if err := s.st.Save(ctx, store.KeyBroadcasts, s.broadcasts); err != nil {
			reads := s.broadcasts[i].Read
			s.broadcasts[i].Read = reads[:len(reads)-1]
			return err
		}
		return nil
	}

	return fmt.Errorf("%w: broadcast %s", pkg.ErrNotFound, id)
}

func (s *broadcastService) UnreadFor(ctx context.Context, reader string) []models.Broadcast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Broadcast
	for _, b := range s.broadcasts {
		if !b.ReadBy(reader) {
			out = append(out, b)
		}
	}
	return out
}

func (s *broadcastService) List(ctx context.Context) []models.Broadcast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortByTimeDesc(s.broadcasts, func(b models.Broadcast) time.Time { return b.SentDate })
}

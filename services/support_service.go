package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/store"
	"github.com/ardaguler/eip/ws"
)

// SupportService, destek talebi koleksiyonunun sahibi.
// Talepler hiç silinmez; yanıt eklenir ve durum güncellenir.
type SupportService interface {
	// Send, yeni bir talep açar. sender boşsa "anonymous"/"Anonymous"
	// atanır. Başlangıç durumu her zaman "open", yanıt listesi boş.
	Send(ctx context.Context, req *models.SendSupportRequest, sender, senderName string) (*models.SupportMessage, error)

	// Reply, talebe yanıt ekler — durum DEĞİŞMEZ. Talebin sahibine
	// support_reply event'i düşer. Talep yoksa pkg.ErrNotFound.
	Reply(ctx context.Context, id, content, sender, senderName string) (*models.SupportReply, error)

	// UpdateStatus, durumu üç değerden birine çevirir. Geçiş kuralı yok:
	// resolved bir talep tekrar open yapılabilir. Enumerasyon dışı değer
	// pkg.ErrBadRequest'tir; talep yoksa pkg.ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status models.TicketStatus) error

	// Get, id'ye göre talebi döner; yoksa pkg.ErrNotFound.
	Get(ctx context.Context, id string) (*models.SupportMessage, error)

	// List, taleplerin yeniden-eskiye sıralı kopyasını döner.
	List(ctx context.Context) []models.SupportMessage

	// Count, toplam talep sayısı; CountByStatus admin paneli sayaçları.
	Count() int
	CountByStatus(status models.TicketStatus) int
}

type supportService struct {
	mu       sync.RWMutex
	st       *store.Store
	hub      ws.EventPublisher
	messages []models.SupportMessage
}

// NewSupportService, destek koleksiyonunu hydrate eder. hub nil olabilir.
func NewSupportService(ctx context.Context, st *store.Store, hub ws.EventPublisher) (SupportService, error) {
	s := &supportService{st: st, hub: hub}
	if err := st.Load(ctx, store.KeySupport, &s.messages); err != nil {
		return nil, fmt.Errorf("failed to load support messages: %w", err)
	}
	return s, nil
}

func (s *supportService) Send(ctx context.Context, req *models.SendSupportRequest, sender, senderName string) (*models.SupportMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if sender == "" {
		sender = "anonymous"
	}
	if senderName == "" {
		senderName = "Anonymous"
	}

	message := models.SupportMessage{
		ID:         newID(),
		Subject:    req.Subject,
		Message:    req.Message,
		Priority:   req.Priority,
		Sender:     sender,
		SenderName: senderName,
		SentDate:   time.Now().UTC(),
		Status:     models.StatusOpen,
		Replies:    []models.SupportReply{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)
	if err := s.st.Save(ctx, store.KeySupport, s.messages); err != nil {
		s.messages = s.messages[:len(s.messages)-1]
		return nil, err
	}

	return &message, nil
}

func (s *supportService) Reply(ctx context.Context, id, content, sender, senderName string) (*models.SupportReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: reply content is required", pkg.ErrBadRequest)
	}
	if sender == "" {
		sender = "admin"
	}
	if senderName == "" {
		senderName = "Admin"
	}

	reply := models.SupportReply{
		ID:         newID(),
		Content:    content,
		Sender:     sender,
		SenderName: senderName,
		SentDate:   time.Now().UTC(),
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: support message %s", pkg.ErrNotFound, id)
	}

	s.messages[idx].Replies = append(s.messages[idx].Replies, reply)
	if err := s.st.Save(ctx, store.KeySupport, s.messages); err != nil {
		replies := s.messages[idx].Replies
		s.messages[idx].Replies = replies[:len(replies)-1]
		s.mu.Unlock()
		return nil, err
	}
	owner := s.messages[idx].Sender
	s.mu.Unlock()

	if s.hub != nil && owner != "anonymous" {
		s.hub.BroadcastToUser(owner, ws.Event{Op: ws.OpSupportReply, Data: reply})
	}

	return &reply, nil
}

func (s *supportService) UpdateStatus(ctx context.Context, id string, status models.TicketStatus) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: status must be one of: open, in-progress, resolved", pkg.ErrBadRequest)
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx == -1 {
		s.mu.Unlock()
		return fmt.Errorf("%w: support message %s", pkg.ErrNotFound, id)
	}

	prev := s.messages[idx].Status
	s.messages[idx].Status = status
	if err := s.st.Save(ctx, store.KeySupport, s.messages); err != nil {
		s.messages[idx].Status = prev
		s.mu.Unlock()
		return err
	}
	owner := s.messages[idx].Sender
	s.mu.Unlock()

	if s.hub != nil && owner != "anonymous" {
		s.hub.BroadcastToUser(owner, ws.Event{
			Op:   ws.OpSupportStatus,
			Data: ws.SupportStatusData{TicketID: id, Status: string(status)},
		})
	}

	return nil
}

func (s *supportService) Get(ctx context.Context, id string) (*models.SupportMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(id); idx != -1 {
		message := s.messages[idx]
		return &message, nil
	}
	return nil, fmt.Errorf("%w: support message %s", pkg.ErrNotFound, id)
}

func (s *supportService) List(ctx context.Context) []models.SupportMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortByTimeDesc(s.messages, func(m models.SupportMessage) time.Time { return m.SentDate })
}

func (s *supportService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *supportService) CountByStatus(status models.TicketStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.messages {
		if m.Status == status {
			count++
		}
	}
	return count
}

func (s *supportService) indexLocked(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

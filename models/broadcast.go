package models

import (
	"fmt"
	"strings"
	"time"
)

// BroadcastPriority, duyurunun önceliği.
type BroadcastPriority string

const (
	PriorityLow    BroadcastPriority = "low"
	PriorityNormal BroadcastPriority = "normal"
	PriorityHigh   BroadcastPriority = "high"
)

// ValidPriority, öncelik değerini kontrol eder.
func ValidPriority(p BroadcastPriority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// Broadcast, admin'in tüm kullanıcılara gönderdiği duyuru.
// Gönderildikten sonra içerik değişmez; sadece Read seti büyür.
type Broadcast struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Priority BroadcastPriority `json:"priority"`
	Sender   string            `json:"sender"`
	SentDate time.Time         `json:"sentDate"`

	// Read, duyuruyu görmüş kullanıcı kimlikleri. Monoton büyür,
	// ekleme idempotent'tir (aynı okuyucu iki kez eklenmez).
	Read []string `json:"read"`
}

// ReadBy, okuyucunun duyuruyu görüp görmediğini döner.
func (b *Broadcast) ReadBy(reader string) bool {
	for _, r := range b.Read {
		if r == reader {
			return true
		}
	}
	return false
}

// SendBroadcastRequest, duyuru formundan gelen veri.
type SendBroadcastRequest struct {
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Priority BroadcastPriority `json:"priority"`
}

// Validate, duyuru isteğini kontrol eder. Öncelik boşsa "normal" atanır.
func (r *SendBroadcastRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}

	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return fmt.Errorf("message is required")
	}

	if r.Priority == "" {
		r.Priority = PriorityNormal
	}
	if !ValidPriority(r.Priority) {
		return fmt.Errorf("priority must be one of: low, normal, high")
	}

	return nil
}

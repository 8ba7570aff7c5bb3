package models

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus, destek talebinin durumu.
//
// Durum makinesi kasıtlı olarak serbest: üç durum arasındaki altı geçişin
// tamamı geçerlidir, terminal durum yoktur. Admin "resolved" bir talebi
// tekrar "open" yapabilir.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in-progress"
	StatusResolved   TicketStatus = "resolved"
)

// ValidStatus, durumun enumerasyon içinde olup olmadığını kontrol eder.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// SupportReply, bir destek talebine yazılmış yanıt.
type SupportReply struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName"`
	SentDate   time.Time `json:"sentDate"`
}

// SupportMessage, bir destek talebi (ticket).
// Hiç silinmez; durum güncellemesi ve yanıt eklemesiyle mutate edilir.
type SupportMessage struct {
	ID         string            `json:"id"`
	Subject    string            `json:"subject"`
	Message    string            `json:"message"`
	Priority   BroadcastPriority `json:"priority"`
	Sender     string            `json:"sender"`
	SenderName string            `json:"senderName"`
	SentDate   time.Time         `json:"sentDate"`
	Status     TicketStatus      `json:"status"`
	Replies    []SupportReply    `json:"replies"`
}

// SendSupportRequest, destek formundan gelen veri.
type SendSupportRequest struct {
	Subject  string            `json:"subject"`
	Message  string            `json:"message"`
	Priority BroadcastPriority `json:"priority"`
}

// Validate, destek isteğini kontrol eder. Öncelik boşsa "normal" atanır.
func (r *SendSupportRequest) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Subject == "" {
		return fmt.Errorf("subject is required")
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

package models

import (
	"fmt"
	"strings"
	"time"
)

// Tip, kullanıcılara gösterilen kısa ipucu içeriği.
// Create + delete var, update yok. Listeler her zaman yeniden-eskiye sıralanır.
type Tip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"` // serbest metin: "productivity", "technology", ...
	Author      string    `json:"author"`
	CreatedDate time.Time `json:"createdDate"`
}

// CreateTipRequest, yeni ipucu formundan gelen veri.
type CreateTipRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Validate, ipucu isteğini kontrol eder. Kategori boşsa "general" atanır.
func (r *CreateTipRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}

	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return fmt.Errorf("content is required")
	}

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		r.Category = "general"
	}

	return nil
}

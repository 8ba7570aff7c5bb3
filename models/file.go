package models

import (
	"fmt"
	"strings"
	"time"
)

// FileCategory, dosyanın sabit sınıflandırması.
// Yükleme anında dosya adı + MIME type'tan çıkarılır, sonradan değişmez.
type FileCategory string

const (
	CategoryAPK      FileCategory = "apk"      // uygulama paketi (.apk)
	CategoryImage    FileCategory = "image"    // image/* MIME
	CategoryDocument FileCategory = "document" // pdf, doc, docx, txt
	CategoryOther    FileCategory = "other"
)

// ValidCategory, filtrelerde kullanılan kategori değerini kontrol eder.
func ValidCategory(c FileCategory) bool {
	switch c {
	case CategoryAPK, CategoryImage, CategoryDocument, CategoryOther:
		return true
	}
	return false
}

// FileRecord, yüklenmiş bir dosyanın kaydı. İçerik diskte (upload dizini),
// metadata store'da tutulur. Güncelleme yok: create + delete.
type FileRecord struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Size       int64        `json:"size"`
	Type       FileCategory `json:"type"`
	UploadDate time.Time    `json:"uploadDate"`
	Uploader   string       `json:"uploader"`

	// StoredName, upload dizinindeki gerçek dosya adı ({hex}_{orijinal}).
	// Orijinal isimle çakışmaları ve path traversal'ı engeller.
	StoredName string `json:"storedName,omitempty"`
}

// UploadRequest, dosya yükleme metadata'sı. İçerik ayrı taşınır (io.Reader).
type UploadRequest struct {
	Name     string
	MimeType string
	Size     int64
}

// Validate, upload metadata'sını kontrol eder.
func (r *UploadRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("file name is required")
	}
	if strings.ContainsAny(r.Name, "/\\") {
		return fmt.Errorf("file name must not contain path separators")
	}
	if r.Size < 0 {
		return fmt.Errorf("file size must not be negative")
	}
	return nil
}

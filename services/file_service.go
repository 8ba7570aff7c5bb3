package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/store"
)

// FileService, dosya koleksiyonunun sahibi. Metadata store'da, içerik
// upload dizininde tutulur. Kayıtlar update edilmez: upload + delete.
type FileService interface {
	// Upload, içeriği diske yazar, sınıflandırır ve kaydı oluşturur.
	Upload(ctx context.Context, req *models.UploadRequest, data io.Reader, uploader string) (*models.FileRecord, error)

	// Delete, kaydı ve diskteki içeriği siler; yoksa pkg.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Get, id'ye göre kaydı döner; yoksa pkg.ErrNotFound.
	Get(ctx context.Context, id string) (*models.FileRecord, error)

	// List, kayıtların kopyasını döner; category boş değilse süzer.
	List(ctx context.Context, category models.FileCategory) []models.FileRecord

	// Path, kaydın diskteki tam yolunu döner (indirme endpoint'i için).
	Path(record *models.FileRecord) string

	// Count, toplam kayıt sayısı (istatistik).
	Count() int
}

type fileService struct {
	mu        sync.RWMutex
	st        *store.Store
	files     []models.FileRecord
	uploadDir string
	maxSize   int64
}

// NewFileService, dosya koleksiyonunu hydrate eder ve upload dizinini oluşturur.
func NewFileService(ctx context.Context, st *store.Store, uploadDir string, maxSize int64) (FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	s := &fileService{st: st, uploadDir: uploadDir, maxSize: maxSize}
	if err := st.Load(ctx, store.KeyFiles, &s.files); err != nil {
		return nil, fmt.Errorf("failed to load files: %w", err)
	}

	return s, nil
}

// documentSuffixes, "document" sınıfına giren dosya uzantıları.
var documentSuffixes = []string{".pdf", ".doc", ".docx", ".txt"}

// Classify, dosyayı isim + MIME type'a bakarak sabit kategorilere ayırır.
// Sıra önemli: .apk uzantısı MIME'dan önce kontrol edilir (tarayıcılar
// .apk için çoğu zaman application/octet-stream gönderir).
func Classify(filename, mimeType string) models.FileCategory {
	lower := strings.ToLower(filename)
	mime := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))

	switch {
	case strings.HasSuffix(lower, ".apk"):
		return models.CategoryAPK
	case strings.HasPrefix(mime, "image/"):
		return models.CategoryImage
	case strings.Contains(mime, "document") || hasAnySuffix(lower, documentSuffixes):
		return models.CategoryDocument
	default:
		return models.CategoryOther
	}
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func (s *fileService) Upload(ctx context.Context, req *models.UploadRequest, data io.Reader, uploader string) (*models.FileRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if s.maxSize > 0 && req.Size > s.maxSize {
		return nil, fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}
	if uploader == "" {
		uploader = "admin"
	}

	// Unique dosya adı — {random_hex}_{orijinal} formatı.
	// Çakışmayı ve path traversal'ı birlikte engeller.
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("failed to generate file name: %w", err)
	}
	storedName := hex.EncodeToString(randomBytes) + "_" + filepath.Base(req.Name)

	dst, err := os.Create(filepath.Join(s.uploadDir, storedName))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, data)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(s.uploadDir, storedName))
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	record := models.FileRecord{
		ID:         newID(),
		Name:       req.Name,
		Size:       written,
		Type:       Classify(req.Name, req.MimeType),
		UploadDate: time.Now().UTC(),
		Uploader:   uploader,
		StoredName: storedName,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = append(s.files, record)
	if err := s.st.Save(ctx, store.KeyFiles, s.files); err != nil {
		s.files = s.files[:len(s.files)-1]
		os.Remove(filepath.Join(s.uploadDir, storedName))
		return nil, err
	}

	return &record, nil
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, f := range s.files {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: file %s", pkg.ErrNotFound, id)
	}

	removed := s.files[idx]
	prev := s.files
	s.files = append(append([]models.FileRecord{}, s.files[:idx]...), s.files[idx+1:]...)

	if err := s.st.Save(ctx, store.KeyFiles, s.files); err != nil {
		s.files = prev
		return err
	}

	// Diskteki içerik best-effort silinir — metadata zaten gitti,
	// artık dosyaya ulaşılamaz.
	if removed.StoredName != "" {
		if err := os.Remove(filepath.Join(s.uploadDir, removed.StoredName)); err != nil && !os.IsNotExist(err) {
			log.Printf("[files] failed to remove stored file %s: %v", removed.StoredName, err)
		}
	}

	return nil
}

func (s *fileService) Get(ctx context.Context, id string) (*models.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.files {
		if f.ID == id {
			record := f
			return &record, nil
		}
	}
	return nil, fmt.Errorf("%w: file %s", pkg.ErrNotFound, id)
}

func (s *fileService) List(ctx context.Context, category models.FileCategory) []models.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FileRecord
	for _, f := range s.files {
		if category != "" && f.Type != category {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s *fileService) Path(record *models.FileRecord) string {
	return filepath.Join(s.uploadDir, record.StoredName)
}

func (s *fileService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// FilterFiles, isim araması + kategori eşleşmesiyle süzer. Pure function.
func FilterFiles(files []models.FileRecord, search string, category models.FileCategory) []models.FileRecord {
	needle := strings.ToLower(search)
	var out []models.FileRecord
	for _, f := range files {
		if needle != "" && !strings.Contains(strings.ToLower(f.Name), needle) {
			continue
		}
		if category != "" && f.Type != category {
			continue
		}
		out = append(out, f)
	}
	return out
}

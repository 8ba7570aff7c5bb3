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
)

// TipService, ipucu koleksiyonunun sahibi. Create + delete; update yok.
type TipService interface {
	// Add, yeni bir ipucu ekler. author boşsa "admin" atanır.
	Add(ctx context.Context, req *models.CreateTipRequest, author string) (*models.Tip, error)

	// Delete, id'ye göre siler; yoksa pkg.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List, yeniden-eskiye sıralı kopya döner. limit > 0 ise ilk N.
	List(ctx context.Context, limit int) []models.Tip

	// Count, toplam ipucu sayısı (istatistik).
	Count() int

	// SeedDefaults, koleksiyon boşsa örnek içerikleri ekler.
	SeedDefaults(ctx context.Context) error
}

type tipService struct {
	mu   sync.RWMutex
	st   *store.Store
	tips []models.Tip
}

// NewTipService, ipucu koleksiyonunu store'dan hydrate eder.
func NewTipService(ctx context.Context, st *store.Store) (TipService, error) {
	s := &tipService{st: st}
	if err := st.Load(ctx, store.KeyTips, &s.tips); err != nil {
		return nil, fmt.Errorf("failed to load tips: %w", err)
	}
	return s, nil
}

func (s *tipService) Add(ctx context.Context, req *models.CreateTipRequest, author string) (*models.Tip, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if author == "" {
		author = "admin"
	}

	tip := models.Tip{
		ID:          newID(),
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Author:      author,
		CreatedDate: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tips = append(s.tips, tip)
	if err := s.st.Save(ctx, store.KeyTips, s.tips); err != nil {
		s.tips = s.tips[:len(s.tips)-1]
		return nil, err
	}

	return &tip, nil
}

func (s *tipService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.tips {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: tip %s", pkg.ErrNotFound, id)
	}

	prev := s.tips
	s.tips = append(append([]models.Tip{}, s.tips[:idx]...), s.tips[idx+1:]...)
	if err := s.st.Save(ctx, store.KeyTips, s.tips); err != nil {
		s.tips = prev
		return err
	}
	return nil
}

func (s *tipService) List(ctx context.Context, limit int) []models.Tip {
	s.mu.RLock()
	sorted := sortByTimeDesc(s.tips, func(t models.Tip) time.Time { return t.CreatedDate })
	s.mu.RUnlock()

	if limit > 0 && limit < len(sorted) {
		return sorted[:limit]
	}
	return sorted
}

func (s *tipService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tips)
}

// SeedDefaults, ilk kurulumda dashboard'un boş görünmemesi için
// üç örnek ipucu ekler. Koleksiyon doluysa no-op.
func (s *tipService) SeedDefaults(ctx context.Context) error {
	s.mu.RLock()
	empty := len(s.tips) == 0
	s.mu.RUnlock()
	if !empty {
		return nil
	}

	seeds := []models.CreateTipRequest{
		{
			Title:    "Productivity Hack: Time Blocking",
			Content:  "Time blocking involves scheduling specific blocks of time for different activities. This helps you stay focused and ensures important tasks get done.",
			Category: "productivity",
		},
		{
			Title:    "Keyboard Shortcut: Quick Screenshot",
			Content:  "On Windows, use Win + Shift + S to quickly capture screenshots. On Mac, use Cmd + Shift + 4 for area selection.",
			Category: "technology",
		},
		{
			Title:    "Health Tip: 20-20-20 Rule",
			Content:  "Every 20 minutes, look at something 20 feet away for at least 20 seconds. This helps reduce eye strain from screen time.",
			Category: "health",
		},
	}

	for i := range seeds {
		if _, err := s.Add(ctx, &seeds[i], "admin"); err != nil {
			return fmt.Errorf("failed to seed tips: %w", err)
		}
	}
	return nil
}

// FilterTips, kategori tam eşleşmesi VE başlık/içerik içinde
// case-insensitive substring aramasıyla süzer. Pure function.
func FilterTips(tips []models.Tip, category, search string) []models.Tip {
	needle := strings.ToLower(search)
	var out []models.Tip
	for _, t := range tips {
		if category != "" && t.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Content), needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

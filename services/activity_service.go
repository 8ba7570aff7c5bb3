package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/store"
)

// ActivityService, kullanıcı bazlı dashboard aktivitesini yönetir.
// Her kullanıcının kaydı kendi store key'i altında yaşar
// (user_activity_<id>) — koleksiyon değil, kullanıcı başına tek obje.
type ActivityService interface {
	// Get, kullanıcının aktivitesini döner; DaysActive üyelik tarihinden
	// yeniden hesaplanıp persist edilir.
	Get(ctx context.Context, user *models.User) (*models.UserActivity, error)

	// MarkTipRead, ipucunu okundu işaretler. Idempotent: aynı ipucu
	// ikinci kez sayacı artırmaz.
	MarkTipRead(ctx context.Context, userID, tipID string) (*models.UserActivity, error)

	// RecordFileAccess, dosya erişimini kaydeder. Idempotent.
	RecordFileAccess(ctx context.Context, userID, fileID string) (*models.UserActivity, error)
}

type activityService struct {
	mu sync.Mutex
	st *store.Store
}

// NewActivityService, constructor. Kayıtlar lazily yüklenir —
// boot'ta hydrate edilecek tek bir koleksiyon yok.
func NewActivityService(st *store.Store) ActivityService {
	return &activityService{st: st}
}

func (s *activityService) Get(ctx context.Context, user *models.User) (*models.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, err := s.load(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// daysActive: üyelikten bugüne geçen gün, en az 1.
	days := int(time.Since(user.JoinDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	activity.DaysActive = days

	if err := s.save(ctx, user.ID, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) MarkTipRead(ctx context.Context, userID, tipID string) (*models.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if activity.HasReadTip(tipID) {
		return activity, nil
	}

	activity.ReadTips = append(activity.ReadTips, tipID)
	activity.TipsRead = len(activity.ReadTips)

	if err := s.save(ctx, userID, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) RecordFileAccess(ctx context.Context, userID, fileID string) (*models.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if activity.HasAccessedFile(fileID) {
		return activity, nil
	}

	activity.AccessedFiles = append(activity.AccessedFiles, fileID)
	activity.FilesAccessed = len(activity.AccessedFiles)

	if err := s.save(ctx, userID, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) load(ctx context.Context, userID string) (*models.UserActivity, error) {
	activity := &models.UserActivity{}
	if err := s.st.Load(ctx, store.ActivityKey(userID), activity); err != nil {
		return nil, fmt.Errorf("failed to load activity for %s: %w", userID, err)
	}
	return activity, nil
}

func (s *activityService) save(ctx context.Context, userID string, activity *models.UserActivity) error {
	if err := s.st.Save(ctx, store.ActivityKey(userID), activity); err != nil {
		return fmt.Errorf("failed to save activity for %s: %w", userID, err)
	}
	return nil
}

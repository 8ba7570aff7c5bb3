// Package state, oturum ve tema gibi manager'lar arası paylaşılan
// uygulama durumunu tutar.
//
// Bu bilinçli olarak dar bir aggregate: koleksiyonlar (users, files, ...)
// burada DEĞİL, kendi manager'larının içinde yaşar — hiçbir çağıran bir
// koleksiyonu doğrudan mutate edemez. State main'de bir kez oluşturulur ve
// ihtiyacı olan bileşenlere explicit olarak verilir; package-level global
// yoktur, testler birbirinden izole instance'lar kurabilir.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/store"
)

// State, process boyunca yaşayan oturum + tema aggregate'i.
type State struct {
	mu      sync.RWMutex
	st      *store.Store
	session *models.SessionUser
	theme   models.Theme
}

// New, store'dan hydrate edilmiş bir State oluşturur.
//
// Kalıcı oturum kaydı varsa OLDUĞU GİBİ yüklenir — users koleksiyonuna
// karşı yeniden doğrulama yapılmaz. Banlanan kullanıcının eski oturumu
// transport katmanında (auth middleware ban kontrolü) etkisizleştirilir.
func New(ctx context.Context, st *store.Store) (*State, error) {
	s := &State{st: st, theme: models.ThemeLight}

	var theme models.Theme
	if err := st.Load(ctx, store.KeyTheme, &theme); err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	if models.ValidTheme(theme) {
		s.theme = theme
	}

	var session models.SessionUser
	if err := st.Load(ctx, store.KeyCurrentUser, &session); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.Email != "" {
		s.session = &session
	}

	return s, nil
}

// Session, mevcut oturumun kopyasını döner; oturum yoksa nil.
func (s *State) Session() *models.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// IsAdmin, oturumdan türetilen admin bayrağı. Oturum yoksa false.
func (s *State) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil && s.session.IsAdmin
}

// SetSession, oturumu kurar ve store'a yansıtır.
func (s *State) SetSession(ctx context.Context, user *models.SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.session = &copied

	if err := s.st.Save(ctx, store.KeyCurrentUser, s.session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// ClearSession, oturumu hem bellekten hem store'dan koşulsuz temizler.
func (s *State) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.st.Delete(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// Theme, mevcut temayı döner.
func (s *State) Theme() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme, temayı değiştirir ve store'a yansıtır.
func (s *State) SetTheme(ctx context.Context, theme models.Theme) error {
	if !models.ValidTheme(theme) {
		return fmt.Errorf("%w: theme must be light or dark", pkg.ErrBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	if err := s.st.Save(ctx, store.KeyTheme, theme); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// Package services, business logic katmanını barındırır.
//
// Her entity manager kendi koleksiyonunun TEK sahibidir: slice unexported
// field olarak manager'ın içinde yaşar, constructor'da store'dan hydrate
// edilir ve her mutation'dan sonra koleksiyonun tamamı store'a geri yazılır.
// Handler'lar (ve diğer service'ler) koleksiyona sadece bu dar metodlar
// üzerinden dokunabilir.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/store"
)

// UserService, kullanıcı koleksiyonu + ban listesinin sahibi.
type UserService interface {
	// Create, yeni bir kullanıcı kaydı oluşturur (signup).
	// Email çakışmasında pkg.ErrAlreadyExists döner; koleksiyon değişmez.
	Create(ctx context.Context, req *models.SignupRequest) (*models.User, error)

	// Authenticate, email+şifreyi kayıtlı kullanıcılara karşı doğrular
	// (case-sensitive). Banlı kullanıcı için pkg.ErrBanned döner —
	// şifre doğru olsa bile.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// GetByEmail, email'e göre kullanıcı döner; yoksa pkg.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List, tüm kullanıcıların kopyasını döner (ekleme sırasıyla).
	List(ctx context.Context) []models.User

	// Ban / Unban, ban listesini mutate eder — User kaydına dokunmaz.
	// İkisi de idempotent'tir.
	Ban(ctx context.Context, email string) error
	Unban(ctx context.Context, email string) error

	// IsBanned, email'in ban listesinde olup olmadığını döner.
	IsBanned(email string) bool

	// Stats, admin panelindeki toplam/banlı/aktif sayaçları döner.
	Stats() models.UserStats
}

type userService struct {
	mu     sync.RWMutex
	st     *store.Store
	users  []models.User
	banned []string
}

// NewUserService, kullanıcı ve ban koleksiyonlarını store'dan hydrate eder.
func NewUserService(ctx context.Context, st *store.Store) (UserService, error) {
	s := &userService{st: st}

	if err := st.Load(ctx, store.KeyUsers, &s.users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if err := st.Load(ctx, store.KeyBanned, &s.banned); err != nil {
		return nil, fmt.Errorf("failed to load banned list: %w", err)
	}

	return s, nil
}

func (s *userService) Create(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 2. Email tekilliği — koleksiyonun doğal anahtarı
	for _, u := range s.users {
		if u.Email == req.Email {
			return nil, fmt.Errorf("%w: email already exists", pkg.ErrAlreadyExists)
		}
	}

	// 3. Kaydı oluştur ve koleksiyonu komple persist et
	user := models.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		JoinDate: time.Now().UTC(),
		IsAdmin:  false,
	}

	s.users = append(s.users, user)
	if err := s.st.Save(ctx, store.KeyUsers, s.users); err != nil {
		// Persist başarısızsa bellekteki ekleme geri alınır — state ile
		// store birbirinden koparsa sonraki boot eski veriyi getirir.
		s.users = s.users[:len(s.users)-1]
		return nil, err
	}

	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			if s.isBannedLocked(email) {
				return nil, fmt.Errorf("%w: contact support", pkg.ErrBanned)
			}
			user := u
			return &user, nil
		}
	}

	// "Bilinmeyen email" ile "yanlış şifre" ayırt edilmez — tek mesaj.
	return nil, pkg.ErrUnauthorized
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", pkg.ErrNotFound, email)
}

func (s *userService) List(ctx context.Context) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *userService) Ban(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Idempotent: zaten listedeyse no-op
	if s.isBannedLocked(email) {
		return nil
	}

	s.banned = append(s.banned, email)
	if err := s.st.Save(ctx, store.KeyBanned, s.banned); err != nil {
		s.banned = s.banned[:len(s.banned)-1]
		return err
	}
	return nil
}

func (s *userService) Unban(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Idempotent: listede olmayan email için no-op
	filtered := s.banned[:0:0]
	for _, e := range s.banned {
		if e != email {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(s.banned) {
		return nil
	}

	prev := s.banned
	s.banned = filtered
	if err := s.st.Save(ctx, store.KeyBanned, s.banned); err != nil {
		s.banned = prev
		return err
	}
	return nil
}

func (s *userService) IsBanned(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isBannedLocked(email)
}

func (s *userService) isBannedLocked(email string) bool {
	for _, e := range s.banned {
		if e == email {
			return true
		}
	}
	return false
}

func (s *userService) Stats() models.UserStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.UserStats{
		TotalUsers:  len(s.users),
		BannedUsers: len(s.banned),
		ActiveUsers: len(s.users) - len(s.banned),
	}
}

// FilterUsers, verilen kullanıcı listesini arama metni ve duruma göre süzer.
// Pure function: girdi slice'ı mutate edilmez.
//
// search: isim VEYA email içinde case-insensitive substring.
// status: "" (hepsi), "active" (banlı olmayan), "banned" (banlı).
func FilterUsers(users []models.User, banned []string, search, status string) []models.User {
	isBanned := func(email string) bool {
		for _, e := range banned {
			if e == email {
				return true
			}
		}
		return false
	}

	needle := strings.ToLower(search)
	var out []models.User
	for _, u := range users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}

		switch status {
		case "active":
			if isBanned(u.Email) {
				continue
			}
		case "banned":
			if !isBanned(u.Email) {
				continue
			}
		}

		out = append(out, u)
	}
	return out
}

// sortByTimeDesc, kopyalanmış bir slice'ı timestamp'e göre yeniden-eskiye
// sıralar. Stable: eşit timestamp'lerde orijinal ekleme sırası korunur.
func sortByTimeDesc[T any](items []T, ts func(T) time.Time) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return ts(out[i]).After(ts(out[j]))
	})
	return out
}

func newID() string {
	return uuid.NewString()
}

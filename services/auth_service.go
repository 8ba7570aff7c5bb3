package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/state"
)

// AuthService, oturum yaşam döngüsünü yönetir: login, signup, logout ve
// HTTP katmanı için token üretme/doğrulama.
//
// Admin hesabı user koleksiyonunda yaşamaz — environment'tan gelir.
// Düz ADMIN_PASSWORD constructor'da bcrypt ile hash'lenir, karşılaştırma
// her login'de hash üzerinden yapılır.
type AuthService interface {
	// Login, önce admin hesabını, sonra kayıtlı kullanıcıları dener.
	// Banlı kullanıcı şifresi doğru olsa bile pkg.ErrBanned alır.
	// Başarıda oturum kurulur, persist edilir ve token üretilir.
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)

	// Signup, kullanıcıyı oluşturur ve hemen oturum açar.
	Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error)

	// Logout, oturumu bellekten ve store'dan koşulsuz temizler.
	Logout(ctx context.Context) error

	// ValidateToken, JWT'yi doğrular ve claims'i döner.
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// AuthResult, login/signup sonrası dönen oturum bilgisi + token.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.SessionUser `json:"user"`
}

type authService struct {
	users      UserService
	appState   *state.State
	adminEmail string
	adminHash  []byte
	jwtSecret  []byte
	expiry     time.Duration
}

// NewAuthService, constructor. adminPassword düz metin olarak alınır,
// burada hash'lenir ve düz hali saklanmaz.
func NewAuthService(
	users UserService,
	appState *state.State,
	adminEmail string,
	adminPassword string,
	jwtSecret string,
	expiryHours int,
) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &authService{
		users:      users,
		appState:   appState,
		adminEmail: adminEmail,
		adminHash:  hash,
		jwtSecret:  []byte(jwtSecret),
		expiry:     time.Duration(expiryHours) * time.Hour,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Admin kısa yolu — email eşleşiyorsa sadece admin hash'i denenir,
	// user koleksiyonuna düşülmez. Admin ban listesinden etkilenmez.
	if req.Email == s.adminEmail {
		if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(req.Password)); err != nil {
			return nil, pkg.ErrUnauthorized
		}

		session := models.SessionUser{
			Name:    "Administrator",
			Email:   s.adminEmail,
			IsAdmin: true,
		}
		return s.establishSession(ctx, session)
	}

	// 3. Kayıtlı kullanıcılar — Authenticate ban kontrolünü de yapar
	user, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	session := models.SessionUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: false,
	}
	return s.establishSession(ctx, session)
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*AuthResult, error) {
	// Admin email'i ile kayıt engellenir — koleksiyonda admin'in
	// gölgesi oluşmasın.
	if req.Email == s.adminEmail {
		return nil, fmt.Errorf("%w: email already exists", pkg.ErrAlreadyExists)
	}

	user, err := s.users.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	// Yeni kullanıcı hemen oturum açar
	session := models.SessionUser{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: false,
	}
	return s.establishSession(ctx, session)
}

func (s *authService) Logout(ctx context.Context) error {
	return s.appState.ClearSession(ctx)
}

// establishSession, oturumu state'e yazar (store'a yansır) ve token üretir.
func (s *authService) establishSession(ctx context.Context, session models.SessionUser) (*AuthResult, error) {
	if err := s.appState.SetSession(ctx, &session); err != nil {
		return nil, err
	}

	token, err := s.generateToken(session)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: session}, nil
}

// generateToken, HS256 imzalı oturum token'ı üretir.
func (s *authService) generateToken(session models.SessionUser) (string, error) {
	now := time.Now()
	claims := models.TokenClaims{
		Email:   session.Email,
		Name:    session.Name,
		IsAdmin: session.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

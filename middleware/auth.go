// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware'lar zincir şeklinde çalışır: Auth → Admin → Handler.
// Her middleware kendi kontrolünü yapar, sorun yoksa next'i çağırır;
// sorun varsa response'u kendisi yazar ve zincir orada durur.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ardaguler/eip/handlers"
	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	userService services.UserService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userService services.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userService: userService,
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse → 401 Unauthorized.
//
// HTTP header formatı: Authorization: Bearer <token>
//
// Token geçerli olsa bile kullanıcı sonradan banlanmış olabilir —
// her request'te ban listesi tekrar kontrol edilir. Admin token'ları
// user koleksiyonunda yaşamadığı için bu kontrolden muaftır.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.validate(r)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional, token varsa doğrular, yoksa request'i anonim geçirir.
// Destek mesajları gibi hem üyelerin hem ziyaretçilerin kullandığı
// endpoint'ler için. Geçersiz token yine 401 alır — sessizce
// anonim'e düşmek token hatalarını gizlerdi.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.validate(r)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validate, header'dan token'ı çıkarır, doğrular ve ban kontrolü yapar.
func (m *AuthMiddleware) validate(r *http.Request) (*models.TokenClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("%w: authorization header required", pkg.ErrUnauthorized)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("%w: invalid authorization format, use: Bearer <token>", pkg.ErrUnauthorized)
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.authService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// Ban kontrolü token'a değil güncel listeye bakar
	if !claims.IsAdmin && m.userService.IsBanned(claims.Email) {
		return nil, fmt.Errorf("%w: contact support", pkg.ErrBanned)
	}

	return claims, nil
}

// Package middleware — AdminMiddleware, yönetici yetkisi kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te claims mevcuttur.
// Claims'teki IsAdmin alanı false ise → 403 Forbidden.
//
// Kullanım:
//
//	authMw.Require(adminMw.Require(http.HandlerFunc(userHandler.List)))
package middleware

import (
	"net/http"

	"github.com/ardaguler/eip/handlers"
	"github.com/ardaguler/eip/pkg"
)

// AdminMiddleware, yönetici yetkisi zorunlu kılan middleware.
type AdminMiddleware struct{}

// NewAdminMiddleware, constructor.
func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// Require, yönetici yetkisi zorunlu kılan middleware.
func (m *AdminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := handlers.CurrentUser(r)
		if claims == nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		if !claims.IsAdmin {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

package handlers

import (
	"net/http"

	"github.com/ardaguler/eip/models"
)

// contextKey, context value çakışmalarını önlemek için özel tip.
// String kullanmak yerine kendi tipimizi tanımlarız — başka paketlerin
// context key'leri ile karışmaz.
type contextKey string

// UserContextKey, auth middleware'ın doğrulanmış claims'i request
// context'ine koyduğu anahtar.
const UserContextKey contextKey = "user"

// CurrentUser, request context'inden doğrulanmış claims'i okur.
// Auth middleware'dan geçmemiş bir request'te nil döner.
func CurrentUser(r *http.Request) *models.TokenClaims {
	claims, ok := r.Context().Value(UserContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

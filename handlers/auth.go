// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan store'a erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
	"github.com/ardaguler/eip/state"
)

// AuthHandler, auth endpoint'lerini yöneten struct.
// Service interface'i constructor'dan alınır (DI).
type AuthHandler struct {
	authService services.AuthService
	appState    *state.State
}

// NewAuthHandler, constructor.
func NewAuthHandler(authService services.AuthService, appState *state.State) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appState:    appState,
	}
}

// Signup godoc
// POST /api/auth/signup
// Kayıt başarılıysa kullanıcı hemen oturum açmış olur.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, result)
}

// Login godoc
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Logout godoc
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context()); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// GET /api/auth/me
// Kalıcı oturumu döner — sayfa yenilendiğinde client bu endpoint ile
// kaldığı yerden devam eder. Oturum yoksa 404.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := h.appState.Session()
	if session == nil {
		pkg.Error(w, pkg.ErrNotFound)
		return
	}

	pkg.JSON(w, http.StatusOK, session)
}

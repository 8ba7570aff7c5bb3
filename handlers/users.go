package handlers

import (
	"net/http"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// UserHandler, kullanıcı yönetimi endpoint'leri. Tamamı admin'e özeldir.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler, constructor.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// userView, listelerde dönen kullanıcı + ban durumu.
type userView struct {
	models.User
	Banned bool `json:"banned"`
}

// List godoc
// GET /api/users?search=...&status=all|active|banned
// Şifreler response'a asla yazılmaz.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "all"
	}

	users := h.userService.List(r.Context())
	banned := make([]string, 0)
	for _, u := range users {
		if h.userService.IsBanned(u.Email) {
			banned = append(banned, u.Email)
		}
	}

	filtered := services.FilterUsers(users, banned, search, status)

	views := make([]userView, 0, len(filtered))
	for _, u := range filtered {
		views = append(views, userView{User: u.Sanitized(), Banned: h.userService.IsBanned(u.Email)})
	}

	pkg.JSON(w, http.StatusOK, views)
}

// Ban godoc
// POST /api/users/{email}/ban
func (h *UserHandler) Ban(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	if err := h.userService.Ban(r.Context(), email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "user banned"})
}

// Unban godoc
// POST /api/users/{email}/unban
func (h *UserHandler) Unban(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	if err := h.userService.Unban(r.Context(), email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "user unbanned"})
}

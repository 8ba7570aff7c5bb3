package handlers

import (
	"net/http"

	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// ActivityHandler, kullanıcının kendi aktivite özeti.
type ActivityHandler struct {
	activityService services.ActivityService
	userService     services.UserService
}

// NewActivityHandler, constructor.
func NewActivityHandler(activityService services.ActivityService, userService services.UserService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		userService:     userService,
	}
}

// Get godoc
// GET /api/activity
// Aktif gün sayısı her okumada kayıt tarihinden yeniden hesaplanır.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)

	if claims.IsAdmin {
		pkg.ErrorWithMessage(w, http.StatusForbidden, "admin account has no activity record")
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), claims.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	activity, err := h.activityService.Get(r.Context(), user)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, activity)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// TipHandler, ipucu (tip) endpoint'leri.
type TipHandler struct {
	tipService      services.TipService
	activityService services.ActivityService
}

// NewTipHandler, constructor.
func NewTipHandler(tipService services.TipService, activityService services.ActivityService) *TipHandler {
	return &TipHandler{
		tipService:      tipService,
		activityService: activityService,
	}
}

// Create godoc
// POST /api/tips (admin)
func (h *TipHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)

	var req models.CreateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tip, err := h.tipService.Add(r.Context(), &req, claims.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, tip)
}

// List godoc
// GET /api/tips?limit=N&category=...&search=...
// Yeniden eskiye sıralı döner; limit 0 = hepsi.
func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	tips := h.tipService.List(r.Context(), 0)
	tips = services.FilterTips(tips, category, search)
	if limit > 0 && limit < len(tips) {
		tips = tips[:limit]
	}

	pkg.JSON(w, http.StatusOK, tips)
}

// Delete godoc
// DELETE /api/tips/{id} (admin)
func (h *TipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.tipService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "tip deleted"})
}

// MarkRead godoc
// POST /api/tips/{id}/read
// Okuma aktiviteye işlenir; tekrar okuma sayaç arttırmaz.
func (h *TipHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)
	id := r.PathValue("id")

	if claims.IsAdmin || claims.Subject == "" {
		pkg.JSON(w, http.StatusOK, map[string]string{"message": "ok"})
		return
	}

	activity, err := h.activityService.MarkTipRead(r.Context(), claims.Subject, id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, activity)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// BroadcastHandler, duyuru endpoint'leri.
type BroadcastHandler struct {
	broadcastService services.BroadcastService
}

// NewBroadcastHandler, constructor.
func NewBroadcastHandler(broadcastService services.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{broadcastService: broadcastService}
}

// Send godoc
// POST /api/broadcasts (admin)
// Gönderim anında bağlı tüm WebSocket client'larına da yayınlanır.
func (h *BroadcastHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)

	var req models.SendBroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	broadcast, err := h.broadcastService.Send(r.Context(), &req, claims.Email)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, broadcast)
}

// List godoc
// GET /api/broadcasts
func (h *BroadcastHandler) List(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.broadcastService.List(r.Context()))
}

// Unread godoc
// GET /api/broadcasts/unread
// Okuyucu kimliği token'daki email'dir.
func (h *BroadcastHandler) Unread(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)
	pkg.JSON(w, http.StatusOK, h.broadcastService.UnreadFor(r.Context(), claims.Email))
}

// MarkRead godoc
// POST /api/broadcasts/{id}/read
// İkinci çağrı hata değildir — okundu bilgisi idempotent.
func (h *BroadcastHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)
	id := r.PathValue("id")

	if err := h.broadcastService.MarkRead(r.Context(), id, claims.Email); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

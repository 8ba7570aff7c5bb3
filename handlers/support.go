package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// SupportHandler, destek mesajı endpoint'leri.
//
// Send hem üyelere hem anonim ziyaretçilere açıktır (Optional auth);
// diğer operasyonlar admin'e özeldir.
type SupportHandler struct {
	supportService services.SupportService
}

// NewSupportHandler, constructor.
func NewSupportHandler(supportService services.SupportService) *SupportHandler {
	return &SupportHandler{supportService: supportService}
}

// Send godoc
// POST /api/support
// Token varsa gönderen token'dan alınır, yoksa mesaj anonim kaydedilir.
func (h *SupportHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendSupportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sender, senderName := "", ""
	if claims := CurrentUser(r); claims != nil {
		sender = claims.Email
		senderName = claims.Name
	}

	message, err := h.supportService.Send(r.Context(), &req, sender, senderName)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// List godoc
// GET /api/support (admin)
func (h *SupportHandler) List(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.supportService.List(r.Context()))
}

// Get godoc
// GET /api/support/{id} (admin)
func (h *SupportHandler) Get(w http.ResponseWriter, r *http.Request) {
	message, err := h.supportService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}

// Reply godoc
// POST /api/support/{id}/replies (admin)
// Cevap, mesaj sahibi bağlıysa WebSocket üzerinden de iletilir.
func (h *SupportHandler) Reply(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.supportService.Reply(r.Context(), r.PathValue("id"), req.Content, claims.Email, claims.Name)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, reply)
}

// UpdateStatus godoc
// PUT /api/support/{id}/status (admin)
// Body: { "status": "open" | "in-progress" | "resolved" }
// Her yönde geçiş serbesttir — çözülmüş bir kayıt tekrar açılabilir.
func (h *SupportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.TicketStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.supportService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// Package handlers — StatsHandler, admin panelindeki özet sayaçlar.
package handlers

import (
	"net/http"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/services"
)

// StatsResponse, admin istatistik endpoint'inin response formatı.
type StatsResponse struct {
	Users        models.UserStats `json:"users"`
	TotalFiles   int              `json:"totalFiles"`
	TotalTips    int              `json:"totalTips"`
	TotalTickets int              `json:"totalTickets"`
	OpenTickets  int              `json:"openTickets"`
}

// StatsHandler, istatistik endpoint'lerini yöneten handler.
type StatsHandler struct {
	userService    services.UserService
	fileService    services.FileService
	tipService     services.TipService
	supportService services.SupportService
}

// NewStatsHandler, constructor. main.go'da wire-up edilir.
func NewStatsHandler(
	userService services.UserService,
	fileService services.FileService,
	tipService services.TipService,
	supportService services.SupportService,
) *StatsHandler {
	return &StatsHandler{
		userService:    userService,
		fileService:    fileService,
		tipService:     tipService,
		supportService: supportService,
	}
}

// Get godoc
// GET /api/stats (admin)
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, StatsResponse{
		Users:        h.userService.Stats(),
		TotalFiles:   h.fileService.Count(),
		TotalTips:    h.tipService.Count(),
		TotalTickets: h.supportService.Count(),
		OpenTickets:  h.supportService.CountByStatus(models.StatusOpen),
	})
}

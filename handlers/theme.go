package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ardaguler/eip/models"
	"github.com/ardaguler/eip/pkg"
	"github.com/ardaguler/eip/state"
)

// ThemeHandler, kalıcı tema tercihi endpoint'leri.
type ThemeHandler struct {
	appState *state.State
}

// NewThemeHandler, constructor.
func NewThemeHandler(appState *state.State) *ThemeHandler {
	return &ThemeHandler{appState: appState}
}

// Get godoc
// GET /api/theme
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]models.Theme{"theme": h.appState.Theme()})
}

// Set godoc
// PUT /api/theme
// Body: { "theme": "light" | "dark" }
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme models.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.appState.SetTheme(r.Context(), req.Theme); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]models.Theme{"theme": req.Theme})
}

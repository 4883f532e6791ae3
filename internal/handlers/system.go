package handlers

import (
	"net/http"
)

// ReloadData re-reads both datasets and swaps them in together.
// On failure the previous data keeps being served.
// @Summary Reload Datasets
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Reload failed"
// @Router /system/reload [post]
func (h *Handler) ReloadData(w http.ResponseWriter, r *http.Request) {
	snap, err := h.framework.Reload(r.Context())
	if err != nil {
		h.logger.Errorw("Dataset reload failed", "error", err)
		h.errorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":     "reloaded",
		"version":    snap.Version,
		"loaded_at":  snap.LoadedAt,
		"components": snap.Checklist.Len(),
		"matches":    snap.Matches.Len(),
	})
}

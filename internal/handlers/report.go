package handlers

import (
	"io"
	"net/http"
)

// GetReport returns the framework summary report as markdown
// @Summary Framework Report
// @Tags Report
// @Produce text/markdown
// @Success 200 {string} string "Markdown report"
// @Router /report [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, h.framework.Current().SummaryReport())
}

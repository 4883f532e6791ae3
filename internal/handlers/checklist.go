package handlers

import (
	"net/http"

	"github.com/tennisframework/tennis-api/internal/models"
)

// GetChecklist returns checklist components. Filters combine with AND.
// @Summary List Checklist Components
// @Tags Checklist
// @Produce json
// @Param category query string false "Exact category name"
// @Param real_time query bool false "Only components available in real time"
// @Param public query bool false "Only publicly available components"
// @Param evidence query bool false "Only evidence-based components"
// @Success 200 {array} models.ComponentRecord
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /checklist [get]
func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	type flag struct {
		key  string
		test func(models.ComponentRecord) bool
	}
	flags := []flag{
		{"real_time", func(c models.ComponentRecord) bool { return c.RealTimeAvailable }},
		{"public", models.ComponentRecord.IsPublic},
		{"evidence", func(c models.ComponentRecord) bool { return c.EvidenceBased }},
	}

	checklist := h.framework.Current().Checklist
	components := checklist.All()
	if category := r.URL.Query().Get("category"); category != "" {
		components = checklist.ByCategory(category)
	}

	for _, f := range flags {
		want, set, err := queryBool(r, f.key)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if !set {
			continue
		}
		kept := components[:0:0]
		for _, c := range components {
			if f.test(c) == want {
				kept = append(kept, c)
			}
		}
		components = kept
	}

	h.jsonResponse(w, http.StatusOK, components)
}

// GetChecklistCategories returns the distinct categories in ascending order
// @Summary List Checklist Categories
// @Tags Checklist
// @Produce json
// @Success 200 {array} string
// @Router /checklist/categories [get]
func (h *Handler) GetChecklistCategories(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.framework.Current().Checklist.Categories())
}

// GetChecklistSummary returns checklist totals
// @Summary Checklist Summary
// @Tags Checklist
// @Produce json
// @Success 200 {object} models.ChecklistSummary
// @Router /checklist/summary [get]
func (h *Handler) GetChecklistSummary(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.framework.Current().Checklist.Summary())
}

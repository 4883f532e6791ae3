package handlers

import (
	"net/http"

	"github.com/tennisframework/tennis-api/internal/models"
)

// GetMatches returns match records in stored order, optionally filtered
// @Summary List Matches
// @Tags Matches
// @Produce json
// @Param player query string false "Player name (either side)"
// @Param tournament query string false "Tournament name"
// @Param category query string false "Men's Singles or Women's Singles"
// @Success 200 {array} models.MatchRecord
// @Router /matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	history := h.framework.Current().Matches

	matches := history.All()
	if player := q.Get("player"); player != "" {
		matches = history.ByPlayer(player)
	}
	if tournament := q.Get("tournament"); tournament != "" {
		matches = keepMatches(matches, func(m models.MatchRecord) bool { return m.Tournament == tournament })
	}
	if category := q.Get("category"); category != "" {
		matches = keepMatches(matches, func(m models.MatchRecord) bool { return m.Category == category })
	}

	h.jsonResponse(w, http.StatusOK, matches)
}

// GetMatchesSummary returns match history totals
// @Summary Match History Summary
// @Tags Matches
// @Produce json
// @Success 200 {object} models.MatchSummary
// @Router /matches/summary [get]
func (h *Handler) GetMatchesSummary(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.framework.Current().Matches.Summary())
}

// GetTournaments returns the distinct tournament names
// @Summary List Tournaments
// @Tags Matches
// @Produce json
// @Success 200 {array} string
// @Router /tournaments [get]
func (h *Handler) GetTournaments(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.framework.Current().Matches.Tournaments())
}

// GetPlayers returns every player appearing on either side of a match
// @Summary List Players
// @Tags Players
// @Produce json
// @Success 200 {array} string
// @Router /players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.framework.Current().Matches.Players())
}

// GetPlayerPerformance returns a player's win/loss record.
// Unknown players get a zero record rather than 404.
// @Summary Player Performance
// @Tags Players
// @Produce json
// @Param name path string true "Player name"
// @Success 200 {object} models.PerformanceSummary
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /players/{name}/performance [get]
func (h *Handler) GetPlayerPerformance(w http.ResponseWriter, r *http.Request) {
	name := pathName(r, "name")
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "Player name is required")
		return
	}
	h.jsonResponse(w, http.StatusOK, h.framework.AnalyzePlayer(r.Context(), name))
}

// GetHeadToHead returns all matches between two players with each side's wins
// @Summary Head To Head
// @Tags Players
// @Produce json
// @Param player1 query string true "First player"
// @Param player2 query string true "Second player"
// @Success 200 {object} models.HeadToHeadRecord
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /head-to-head [get]
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p1, p2 := q.Get("player1"), q.Get("player2")
	if p1 == "" || p2 == "" {
		h.errorResponse(w, http.StatusBadRequest, "player1 and player2 are required")
		return
	}
	h.jsonResponse(w, http.StatusOK, h.framework.Current().HeadToHeadRecord(p1, p2))
}

func keepMatches(matches []models.MatchRecord, keep func(models.MatchRecord) bool) []models.MatchRecord {
	out := []models.MatchRecord{}
	for _, m := range matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tennisframework/tennis-api/internal/models"
)

// CreatePrediction forecasts a match. Results are placeholders until a model exists.
// @Summary Predict Match Outcome
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body models.PredictionRequest true "Match to predict"
// @Success 200 {object} models.MatchPrediction
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /predictions [post]
func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, describeValidation(err))
		return
	}

	pred, err := h.framework.PredictMatchOutcome(r.Context(), req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.errorResponse(w, http.StatusBadRequest, describeValidation(verrs))
			return
		}
		h.logger.Errorw("Failed to predict match", "error", err, "player1", req.Player1, "player2", req.Player2)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to predict match")
		return
	}

	h.jsonResponse(w, http.StatusOK, pred)
}

// ValidatePredictions scores the predictor against recorded results
// @Summary Validate Predictions
// @Tags Predictions
// @Produce json
// @Param tournament query string false "Only matches from this tournament"
// @Param category query string false "Only matches in this category"
// @Success 200 {object} models.ValidationReport
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /predictions/validate [post]
func (h *Handler) ValidatePredictions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	history := h.framework.Current().Matches

	matches := history.All()
	if tournament := q.Get("tournament"); tournament != "" {
		matches = history.ByTournament(tournament)
	}
	if category := q.Get("category"); category != "" {
		matches = keepMatches(matches, func(m models.MatchRecord) bool { return m.Category == category })
	}

	report, err := h.framework.ValidatePredictions(r.Context(), matches)
	if err != nil {
		h.logger.Errorw("Failed to validate predictions", "error", err, "matches", len(matches))
		h.errorResponse(w, http.StatusInternalServerError, "Failed to validate predictions")
		return
	}
	h.jsonResponse(w, http.StatusOK, report)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "Missing required field: " + fe.Field()
	case "nefield":
		return fe.Field() + " must differ from " + strings.ToLower(fe.Param())
	default:
		return "Invalid field: " + fe.Field()
	}
}

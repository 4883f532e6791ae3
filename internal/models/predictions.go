package models

import "time"

// Prediction defaults applied when a request leaves them empty.
const (
	DefaultSurface         = "Hard"
	DefaultTournamentLevel = "ATP 250"
)

// PredictionRequest describes an upcoming match to forecast.
type PredictionRequest struct {
	Player1         string `json:"player1" validate:"required"`
	Player2         string `json:"player2" validate:"required,nefield=Player1"`
	Surface         string `json:"surface,omitempty"`
	TournamentLevel string `json:"tournament_level,omitempty"`
}

// WithDefaults fills in the default surface and tournament level.
func (r PredictionRequest) WithDefaults() PredictionRequest {
	if r.Surface == "" {
		r.Surface = DefaultSurface
	}
	if r.TournamentLevel == "" {
		r.TournamentLevel = DefaultTournamentLevel
	}
	return r
}

// MatchPrediction forecasts the outcome of a match.
// Placeholder is true when the result comes from a stand-in predictor rather than a model.
type MatchPrediction struct {
	PredictionID       string    `json:"prediction_id"`
	Player1            string    `json:"player1"`
	Player2            string    `json:"player2"`
	Surface            string    `json:"surface"`
	TournamentLevel    string    `json:"tournament_level"`
	Prediction         string    `json:"prediction"` // "player1" or "player2"
	PredictedWinner    string    `json:"predicted_winner"`
	Confidence         float64   `json:"confidence"`
	KeyFactors         []string  `json:"key_factors"`
	FrameworkVersion   string    `json:"framework_version"`
	ComponentsAnalyzed int       `json:"components_analyzed"`
	Placeholder        bool      `json:"placeholder"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// SegmentPerformance is the accuracy of predictions within one slice of matches.
type SegmentPerformance struct {
	Tested             int     `json:"tested"`
	Correct            int     `json:"correct"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// ValidationReport scores a predictor against known match results.
type ValidationReport struct {
	TotalMatchesTested    int                           `json:"total_matches_tested"`
	CorrectPredictions    int                           `json:"correct_predictions"`
	AccuracyPercentage    float64                       `json:"accuracy_percentage"`
	CategoryPerformance   map[string]SegmentPerformance `json:"category_performance"`
	SurfacePerformance    map[string]SegmentPerformance `json:"surface_performance"`
	TournamentPerformance map[string]SegmentPerformance `json:"tournament_performance"`
	Placeholder           bool                          `json:"placeholder"`
}

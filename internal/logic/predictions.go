package logic

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tennisframework/tennis-api/internal/models"
)

// Predictor forecasts a single match against a snapshot of the framework data.
type Predictor interface {
	Predict(ctx context.Context, snap *Snapshot, req models.PredictionRequest) (*models.MatchPrediction, error)
}

const placeholderConfidence = 0.65

var placeholderKeyFactors = []string{
	"Head-to-head record",
	"Recent form",
	"Surface performance",
	"Current ranking",
}

// PlaceholderPredictor stands in until a real model exists. It always favours player1
// at a fixed confidence and marks every result as a placeholder.
type PlaceholderPredictor struct{}

func (p *PlaceholderPredictor) Predict(ctx context.Context, snap *Snapshot, req models.PredictionRequest) (*models.MatchPrediction, error) {
	req = req.WithDefaults()
	return &models.MatchPrediction{
		PredictionID:       uuid.NewString(),
		Player1:            req.Player1,
		Player2:            req.Player2,
		Surface:            req.Surface,
		TournamentLevel:    req.TournamentLevel,
		Prediction:         "player1",
		PredictedWinner:    req.Player1,
		Confidence:         placeholderConfidence,
		KeyFactors:         append([]string(nil), placeholderKeyFactors...),
		FrameworkVersion:   FrameworkVersion,
		ComponentsAnalyzed: snap.Checklist.Len(),
		Placeholder:        true,
		GeneratedAt:        time.Now().UTC(),
	}, nil
}

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// PredictMatchOutcome validates req and forecasts it with the configured predictor.
// Invalid requests return an error wrapping validator.ValidationErrors.
func (f *Framework) PredictMatchOutcome(ctx context.Context, req models.PredictionRequest) (*models.MatchPrediction, error) {
	if err := requestValidator.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid prediction request: %w", err)
	}

	pred, err := f.predictor.Predict(ctx, f.Current(), req.WithDefaults())
	if err != nil {
		predictionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("predict %s vs %s: %w", req.Player1, req.Player2, err)
	}
	predictionsTotal.WithLabelValues("ok").Inc()
	return pred, nil
}

// ValidatePredictions replays matches through the predictor and scores each forecast
// against the recorded winner. The data carries no surface, so SurfacePerformance stays empty.
func (f *Framework) ValidatePredictions(ctx context.Context, matches []models.MatchRecord) (*models.ValidationReport, error) {
	snap := f.Current()
	_, placeholder := f.predictor.(*PlaceholderPredictor)

	report := &models.ValidationReport{
		TotalMatchesTested:    len(matches),
		CategoryPerformance:   map[string]models.SegmentPerformance{},
		SurfacePerformance:    map[string]models.SegmentPerformance{},
		TournamentPerformance: map[string]models.SegmentPerformance{},
	}

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pred, err := f.predictor.Predict(ctx, snap, models.PredictionRequest{Player1: m.Player1, Player2: m.Player2})
		if err != nil {
			return nil, fmt.Errorf("predict %s vs %s on %s: %w", m.Player1, m.Player2, m.Date.Format(models.DateLayout), err)
		}
		placeholder = placeholder || pred.Placeholder

		correct := pred.PredictedWinner == m.Winner
		if correct {
			report.CorrectPredictions++
		}
		tally(report.CategoryPerformance, m.Category, correct)
		tally(report.TournamentPerformance, m.Tournament, correct)
	}

	report.AccuracyPercentage = percentage(report.CorrectPredictions, report.TotalMatchesTested)
	report.Placeholder = placeholder

	f.logger.Infow("Predictions validated",
		"matches", report.TotalMatchesTested,
		"correct", report.CorrectPredictions,
		"accuracy", report.AccuracyPercentage,
	)
	return report, nil
}

func tally(segments map[string]models.SegmentPerformance, key string, correct bool) {
	s := segments[key]
	s.Tested++
	if correct {
		s.Correct++
	}
	s.AccuracyPercentage = percentage(s.Correct, s.Tested)
	segments[key] = s
}

// percentage rounds to two decimals; 0 when nothing was tested.
func percentage(correct, tested int) float64 {
	if tested == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(tested)*10000) / 100
}

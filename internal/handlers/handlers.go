package handlers

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/logic"
	"github.com/tennisframework/tennis-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// FrameworkService is the query surface the handlers serve.
type FrameworkService interface {
	Current() *logic.Snapshot
	Reload(ctx context.Context) (*logic.Snapshot, error)
	AnalyzePlayer(ctx context.Context, name string) models.PerformanceSummary
	PredictMatchOutcome(ctx context.Context, req models.PredictionRequest) (*models.MatchPrediction, error)
	ValidatePredictions(ctx context.Context, matches []models.MatchRecord) (*models.ValidationReport, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Framework FrameworkService
	// Checks are run by /ready, keyed by dependency name.
	Checks map[string]HealthCheck
	Logger *zap.Logger
}

type Handler struct {
	framework FrameworkService
	checks    map[string]HealthCheck
	logger    *zap.SugaredLogger
	validator *validator.Validate
}

func New(cfg Config) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report request fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		framework: cfg.Framework,
		checks:    cfg.Checks,
		logger:    cfg.Logger.Sugar(),
		validator: v,
	}
}

package logic

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tennisframework/tennis-api/internal/dataset"
	"github.com/tennisframework/tennis-api/internal/models"
)

// FrameworkVersion is reported with every prediction.
const FrameworkVersion = "1.0"

// Snapshot is one consistent, immutable view of both datasets.
type Snapshot struct {
	Checklist *dataset.Checklist
	Matches   *dataset.MatchHistory
	Version   string // content-derived, stable across reloads of identical data
	LoadedAt  time.Time
}

// AnalyzePlayer counts name's wins over the matches name played.
// A player with no matches gets a zero win percentage.
func (s *Snapshot) AnalyzePlayer(name string) models.PerformanceSummary {
	matches := s.Matches.ByPlayer(name)
	wins := 0
	for _, m := range matches {
		if m.Winner == name {
			wins++
		}
	}
	return models.NewPerformanceSummary(name, len(matches), wins)
}

// HeadToHead returns the matches between a and b in stored order.
func (s *Snapshot) HeadToHead(a, b string) []models.MatchRecord {
	return s.Matches.HeadToHead(a, b)
}

// HeadToHeadRecord tallies each side's wins in the head-to-head.
func (s *Snapshot) HeadToHeadRecord(a, b string) models.HeadToHeadRecord {
	rec := models.HeadToHeadRecord{Player1: a, Player2: b, Matches: s.HeadToHead(a, b)}
	for _, m := range rec.Matches {
		switch m.Winner {
		case a:
			rec.Player1Wins++
		case b:
			rec.Player2Wins++
		}
	}
	return rec
}

// FrameworkConfig wires the framework's collaborators.
type FrameworkConfig struct {
	Checklist *dataset.ChecklistStore
	Matches   *dataset.MatchStore
	Predictor Predictor         // defaults to the placeholder predictor
	Cache     *PerformanceCache // optional
	Logger    *zap.Logger
}

// Framework composes the checklist and match stores behind a copy-on-write snapshot.
// Readers always see a complete snapshot; Reload swaps in a new one atomically.
type Framework struct {
	checklist *dataset.ChecklistStore
	matches   *dataset.MatchStore
	predictor Predictor
	cache     *PerformanceCache
	logger    *zap.SugaredLogger
	current   atomic.Pointer[Snapshot]

	reloadMu sync.Mutex // orders reloads so an older load never replaces a newer one
}

// NewFramework loads both datasets. A load failure is returned as-is (a *dataset.DataLoadError).
func NewFramework(ctx context.Context, cfg FrameworkConfig) (*Framework, error) {
	if cfg.Predictor == nil {
		cfg.Predictor = &PlaceholderPredictor{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	f := &Framework{
		checklist: cfg.Checklist,
		matches:   cfg.Matches,
		predictor: cfg.Predictor,
		cache:     cfg.Cache,
		logger:    cfg.Logger.Sugar(),
	}
	if _, err := f.Reload(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// Current returns the snapshot in effect.
func (f *Framework) Current() *Snapshot {
	return f.current.Load()
}

// Reload loads both datasets concurrently and swaps them in together.
// On failure the previous snapshot stays in effect. Concurrent calls run one at a time.
func (f *Framework) Reload(ctx context.Context) (*Snapshot, error) {
	f.reloadMu.Lock()
	defer f.reloadMu.Unlock()

	var (
		checklist *dataset.Checklist
		matches   *dataset.MatchHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		checklist, err = f.checklist.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = f.matches.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		f.logger.Errorw("Dataset reload failed, keeping previous snapshot", "error", err)
		return nil, err
	}

	snap := &Snapshot{
		Checklist: checklist,
		Matches:   matches,
		Version:   snapshotVersion(checklist, matches),
		LoadedAt:  time.Now().UTC(),
	}
	prev := f.current.Swap(snap)

	f.logger.Infow("Datasets loaded",
		"components", checklist.Len(),
		"matches", matches.Len(),
		"version", snap.Version,
		"changed", prev == nil || prev.Version != snap.Version,
	)
	return snap, nil
}

// AnalyzePlayer returns name's performance summary from the current snapshot.
func (f *Framework) AnalyzePlayer(ctx context.Context, name string) models.PerformanceSummary {
	snap := f.Current()
	if f.cache != nil {
		if s, ok := f.cache.Get(ctx, snap.Version, name); ok {
			return s
		}
	}

	s := snap.AnalyzePlayer(name)
	if f.cache != nil {
		f.cache.Set(ctx, snap.Version, s)
	}
	return s
}

// HeadToHead returns the matches between a and b from the current snapshot.
func (f *Framework) HeadToHead(a, b string) []models.MatchRecord {
	return f.Current().HeadToHead(a, b)
}

// SummaryReport renders the report for the current snapshot.
func (f *Framework) SummaryReport() string {
	return f.Current().SummaryReport()
}

// snapshotVersion derives a name-based UUID from the stored form of both datasets,
// so cache keys change exactly when the data does.
func snapshotVersion(c *dataset.Checklist, m *dataset.MatchHistory) string {
	payload, err := json.Marshal(struct {
		Checklist []dataset.ComponentRow `json:"checklist"`
		Matches   []dataset.MatchRow     `json:"matches"`
	}{c.Rows(), m.Rows()})
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, payload).String()
}

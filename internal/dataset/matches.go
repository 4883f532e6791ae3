package dataset

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/models"
)

const matchesDataset = "matches"

// MatchHistory is an immutable snapshot of the match dataset.
type MatchHistory struct {
	records []models.MatchRecord
}

// BuildMatchHistory validates raw rows and normalizes them into a snapshot.
func BuildMatchHistory(rows []MatchRow) (*MatchHistory, error) {
	records := make([]models.MatchRecord, 0, len(rows))
	for i, row := range rows {
		if err := validateRow(row, i, ""); err != nil {
			return nil, err
		}
		// Format already checked by the datetime validator.
		date, _ := time.Parse(models.DateLayout, row.Date)
		records = append(records, models.MatchRecord{
			Date:       date,
			Tournament: row.Tournament,
			Category:   row.Category,
			Player1:    row.Player1,
			Player2:    row.Player2,
			Winner:     row.Winner,
		})
	}
	return &MatchHistory{records: records}, nil
}

// Len returns the number of matches.
func (h *MatchHistory) Len() int { return len(h.records) }

// All returns every match in stored order.
func (h *MatchHistory) All() []models.MatchRecord {
	return h.filter(func(models.MatchRecord) bool { return true })
}

// ByPlayer returns the matches in which name played on either side.
func (h *MatchHistory) ByPlayer(name string) []models.MatchRecord {
	return h.filter(func(m models.MatchRecord) bool { return m.Involves(name) })
}

// ByTournament returns the matches of one tournament (exact name match).
func (h *MatchHistory) ByTournament(name string) []models.MatchRecord {
	return h.filter(func(m models.MatchRecord) bool { return m.Tournament == name })
}

// ByCategory returns the matches of one draw, e.g. "Women's Singles".
func (h *MatchHistory) ByCategory(category string) []models.MatchRecord {
	return h.filter(func(m models.MatchRecord) bool { return m.Category == category })
}

// HeadToHead returns the matches between a and b regardless of which side each was listed on.
// HeadToHead(a, b) and HeadToHead(b, a) are identical.
func (h *MatchHistory) HeadToHead(a, b string) []models.MatchRecord {
	return h.filter(func(m models.MatchRecord) bool {
		return (m.Player1 == a && m.Player2 == b) || (m.Player1 == b && m.Player2 == a)
	})
}

// Tournaments returns the distinct tournament names, ascending.
func (h *MatchHistory) Tournaments() []string {
	out := make([]string, 0, len(h.records))
	for _, m := range h.records {
		out = append(out, m.Tournament)
	}
	return sortedSet(out)
}

// Players returns the distinct players from both sides of every match, ascending.
func (h *MatchHistory) Players() []string {
	out := make([]string, 0, 2*len(h.records))
	for _, m := range h.records {
		out = append(out, m.Player1, m.Player2)
	}
	return sortedSet(out)
}

// Summary counts the snapshot's matches, players and tournaments.
func (h *MatchHistory) Summary() models.MatchSummary {
	s := models.MatchSummary{
		TotalMatches:      len(h.records),
		UniquePlayers:     len(h.Players()),
		UniqueTournaments: len(h.Tournaments()),
		ByCategory:        make(map[string]int, len(models.MatchCategories)),
	}
	for _, c := range models.MatchCategories {
		s.ByCategory[c] = 0
	}

	var first, last time.Time
	for i, m := range h.records {
		s.ByCategory[m.Category]++
		if i == 0 || m.Date.Before(first) {
			first = m.Date
		}
		if i == 0 || m.Date.After(last) {
			last = m.Date
		}
	}
	if len(h.records) > 0 {
		s.FirstDate = first.Format(models.DateLayout)
		s.LastDate = last.Format(models.DateLayout)
	}
	return s
}

// Rows converts the snapshot back into its stored representation.
func (h *MatchHistory) Rows() []MatchRow {
	out := make([]MatchRow, 0, len(h.records))
	for _, m := range h.records {
		out = append(out, MatchRow{
			Date:       m.Date.Format(models.DateLayout),
			Tournament: m.Tournament,
			Category:   m.Category,
			Player1:    m.Player1,
			Player2:    m.Player2,
			Winner:     m.Winner,
		})
	}
	return out
}

func (h *MatchHistory) filter(keep func(models.MatchRecord) bool) []models.MatchRecord {
	out := []models.MatchRecord{}
	for _, m := range h.records {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func sortedSet(values []string) []string {
	slices.Sort(values)
	return slices.Compact(values)
}

// MatchStore loads match history snapshots from a source.
// The query methods reload on every call; hold a *MatchHistory to query one snapshot repeatedly.
type MatchStore struct {
	source MatchSource
	logger *zap.SugaredLogger
}

func NewMatchStore(source MatchSource, logger *zap.SugaredLogger) *MatchStore {
	return &MatchStore{source: source, logger: logger}
}

// Source returns the store's backing source.
func (s *MatchStore) Source() MatchSource { return s.source }

// Load reads and validates the whole match history. Failures are *DataLoadError.
func (s *MatchStore) Load(ctx context.Context) (*MatchHistory, error) {
	start := time.Now()
	defer func() {
		datasetLoadDuration.WithLabelValues(matchesDataset).Observe(time.Since(start).Seconds())
	}()

	rows, err := s.source.MatchRows(ctx)
	if err == nil {
		var h *MatchHistory
		if h, err = BuildMatchHistory(rows); err == nil {
			datasetLoads.WithLabelValues(matchesDataset, "ok").Inc()
			datasetRecords.WithLabelValues(matchesDataset).Set(float64(h.Len()))
			s.logger.Debugw("Match history loaded", "source", s.source.Name(), "matches", h.Len())
			return h, nil
		}
	}

	datasetLoads.WithLabelValues(matchesDataset, "error").Inc()
	s.logger.Errorw("Failed to load match history", "source", s.source.Name(), "error", err)
	return nil, &DataLoadError{Dataset: matchesDataset, Source: s.source.Name(), Err: err}
}

func (s *MatchStore) ByPlayer(ctx context.Context, name string) ([]models.MatchRecord, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return h.ByPlayer(name), nil
}

func (s *MatchStore) ByTournament(ctx context.Context, name string) ([]models.MatchRecord, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return h.ByTournament(name), nil
}

func (s *MatchStore) HeadToHead(ctx context.Context, a, b string) ([]models.MatchRecord, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return h.HeadToHead(a, b), nil
}

func (s *MatchStore) Tournaments(ctx context.Context) ([]string, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return h.Tournaments(), nil
}

func (s *MatchStore) Players(ctx context.Context) ([]string, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return h.Players(), nil
}

package dataset

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/models"
)

const checklistDataset = "checklist"

// Checklist is an immutable snapshot of the component checklist.
// Every query returns a fresh slice; an absent match is an empty slice, never an error.
type Checklist struct {
	records []models.ComponentRecord
}

// BuildChecklist validates raw rows and normalizes them into a snapshot.
func BuildChecklist(rows []ComponentRow) (*Checklist, error) {
	records := make([]models.ComponentRecord, 0, len(rows))
	seen := make(map[string]int, len(rows))

	for i, row := range rows {
		if err := validateRow(row, i, row.ID); err != nil {
			return nil, err
		}
		if first, dup := seen[row.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %q (first seen at record %d)", i, row.ID, first)
		}
		seen[row.ID] = i

		records = append(records, models.ComponentRecord{
			ID:                row.ID,
			Category:          row.Category,
			Component:         row.Component,
			Accessibility:     row.Accessibility,
			RealTimeAvailable: yesNo(row.RealTimeAvailable),
			DataSource:        row.DataSource,
			EvidenceBased:     yesNo(row.EvidenceBased),
		})
	}
	return &Checklist{records: records}, nil
}

// Len returns the number of components.
func (c *Checklist) Len() int { return len(c.records) }

// All returns every component in stored order.
func (c *Checklist) All() []models.ComponentRecord {
	return c.filter(func(models.ComponentRecord) bool { return true })
}

// ByCategory returns the components of one category in stored order.
func (c *Checklist) ByCategory(category string) []models.ComponentRecord {
	return c.filter(func(r models.ComponentRecord) bool { return r.Category == category })
}

// Categories returns the distinct categories present, ascending.
func (c *Checklist) Categories() []string {
	out := make([]string, 0, len(models.ChecklistCategories))
	for _, r := range c.records {
		out = append(out, r.Category)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// RealTimeAvailable returns the components whose data is available in real time.
func (c *Checklist) RealTimeAvailable() []models.ComponentRecord {
	return c.filter(func(r models.ComponentRecord) bool { return r.RealTimeAvailable })
}

// PubliclyAvailable returns the components with publicly available data.
func (c *Checklist) PubliclyAvailable() []models.ComponentRecord {
	return c.filter(models.ComponentRecord.IsPublic)
}

// EvidenceBased returns the components backed by cited research.
func (c *Checklist) EvidenceBased() []models.ComponentRecord {
	return c.filter(func(r models.ComponentRecord) bool { return r.EvidenceBased })
}

// Summary counts the snapshot's components.
func (c *Checklist) Summary() models.ChecklistSummary {
	s := models.ChecklistSummary{
		TotalComponents: len(c.records),
		Categories:      len(c.Categories()),
	}
	for _, r := range c.records {
		if r.RealTimeAvailable {
			s.RealTimeAvailable++
		}
		if r.EvidenceBased {
			s.EvidenceBased++
		}
		if r.IsPublic() {
			s.PubliclyAvailable++
		}
	}
	return s
}

// Rows converts the snapshot back into its stored representation.
func (c *Checklist) Rows() []ComponentRow {
	out := make([]ComponentRow, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, ComponentRow{
			ID:                r.ID,
			Category:          r.Category,
			Component:         r.Component,
			Accessibility:     r.Accessibility,
			RealTimeAvailable: yesNoString(r.RealTimeAvailable),
			DataSource:        r.DataSource,
			EvidenceBased:     yesNoString(r.EvidenceBased),
		})
	}
	return out
}

func (c *Checklist) filter(keep func(models.ComponentRecord) bool) []models.ComponentRecord {
	out := []models.ComponentRecord{}
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ChecklistStore loads checklist snapshots from a source.
// The query methods reload on every call; hold a *Checklist to query one snapshot repeatedly.
type ChecklistStore struct {
	source ChecklistSource
	logger *zap.SugaredLogger
}

func NewChecklistStore(source ChecklistSource, logger *zap.SugaredLogger) *ChecklistStore {
	return &ChecklistStore{source: source, logger: logger}
}

// Source returns the store's backing source.
func (s *ChecklistStore) Source() ChecklistSource { return s.source }

// Load reads and validates the whole checklist. Failures are *DataLoadError.
func (s *ChecklistStore) Load(ctx context.Context) (*Checklist, error) {
	start := time.Now()
	defer func() {
		datasetLoadDuration.WithLabelValues(checklistDataset).Observe(time.Since(start).Seconds())
	}()

	rows, err := s.source.ComponentRows(ctx)
	if err == nil {
		var c *Checklist
		if c, err = BuildChecklist(rows); err == nil {
			datasetLoads.WithLabelValues(checklistDataset, "ok").Inc()
			datasetRecords.WithLabelValues(checklistDataset).Set(float64(c.Len()))
			s.logger.Debugw("Checklist loaded", "source", s.source.Name(), "components", c.Len())
			return c, nil
		}
	}

	datasetLoads.WithLabelValues(checklistDataset, "error").Inc()
	s.logger.Errorw("Failed to load checklist", "source", s.source.Name(), "error", err)
	return nil, &DataLoadError{Dataset: checklistDataset, Source: s.source.Name(), Err: err}
}

func (s *ChecklistStore) ByCategory(ctx context.Context, category string) ([]models.ComponentRecord, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.ByCategory(category), nil
}

func (s *ChecklistStore) Categories(ctx context.Context) ([]string, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Categories(), nil
}

func (s *ChecklistStore) RealTimeAvailable(ctx context.Context) ([]models.ComponentRecord, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.RealTimeAvailable(), nil
}

func (s *ChecklistStore) PubliclyAvailable(ctx context.Context) ([]models.ComponentRecord, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.PubliclyAvailable(), nil
}

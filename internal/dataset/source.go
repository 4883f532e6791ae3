package dataset

import "context"

// ChecklistSource yields the raw checklist rows in their stored order.
type ChecklistSource interface {
	Name() string
	ComponentRows(ctx context.Context) ([]ComponentRow, error)
}

// MatchSource yields the raw match rows in their stored order.
type MatchSource interface {
	Name() string
	MatchRows(ctx context.Context) ([]MatchRow, error)
}

// StaticSource serves rows held in memory. It backs tests and the seeder round trip.
type StaticSource struct {
	Label      string
	Components []ComponentRow
	Matches    []MatchRow
}

func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s *StaticSource) ComponentRows(ctx context.Context) ([]ComponentRow, error) {
	return append([]ComponentRow(nil), s.Components...), nil
}

func (s *StaticSource) MatchRows(ctx context.Context) ([]MatchRow, error) {
	return append([]MatchRow(nil), s.Matches...), nil
}

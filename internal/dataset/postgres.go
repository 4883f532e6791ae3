package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PgQuerier is the subset of *pgxpool.Pool the PostgreSQL source needs.
type PgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads both datasets from the checklist_components and matches tables.
type PostgresSource struct {
	pool PgQuerier
}

func NewPostgresSource(pool PgQuerier) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func (s *PostgresSource) Name() string { return "postgres" }

const pgComponentsQuery = `
	SELECT id, category, component, accessibility, real_time_available, data_source, evidence_based
	FROM checklist_components
	ORDER BY seq
`

const pgMatchesQuery = `
	SELECT to_char(match_date, 'YYYY-MM-DD'), tournament, category, player1, player2, winner
	FROM matches
	ORDER BY seq
`

func (s *PostgresSource) ComponentRows(ctx context.Context) ([]ComponentRow, error) {
	rows, err := s.pool.Query(ctx, pgComponentsQuery)
	if err != nil {
		return nil, fmt.Errorf("query checklist_components: %w", err)
	}
	defer rows.Close()

	out := []ComponentRow{}
	for rows.Next() {
		var r ComponentRow
		if err := rows.Scan(&r.ID, &r.Category, &r.Component, &r.Accessibility,
			&r.RealTimeAvailable, &r.DataSource, &r.EvidenceBased); err != nil {
			return nil, fmt.Errorf("scan checklist_components: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checklist_components: %w", err)
	}
	return out, nil
}

func (s *PostgresSource) MatchRows(ctx context.Context) ([]MatchRow, error) {
	rows, err := s.pool.Query(ctx, pgMatchesQuery)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	out := []MatchRow{}
	for rows.Next() {
		var r MatchRow
		if err := rows.Scan(&r.Date, &r.Tournament, &r.Category, &r.Player1, &r.Player2, &r.Winner); err != nil {
			return nil, fmt.Errorf("scan matches: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

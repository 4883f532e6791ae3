package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// SQLQuerier is the subset of *sql.DB the MySQL source needs.
type SQLQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// MySQLSource reads both datasets from MySQL tables shaped like the PostgreSQL ones.
type MySQLSource struct {
	db SQLQuerier
}

func NewMySQLSource(db SQLQuerier) *MySQLSource {
	return &MySQLSource{db: db}
}

// OpenMySQL builds a connection pool from a go-sql-driver DSN,
// e.g. "user:pass@tcp(localhost:3306)/tennis".
func OpenMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	// Dates are formatted in SQL; keep them as strings.
	cfg.ParseTime = false
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	return sql.OpenDB(connector), nil
}

func (s *MySQLSource) Name() string { return "mysql" }

const mysqlComponentsQuery = `
	SELECT id, category, component, accessibility, real_time_available, data_source, evidence_based
	FROM checklist_components
	ORDER BY seq
`

const mysqlMatchesQuery = `
	SELECT DATE_FORMAT(match_date, '%Y-%m-%d'), tournament, category, player1, player2, winner
	FROM matches
	ORDER BY seq
`

func (s *MySQLSource) ComponentRows(ctx context.Context) ([]ComponentRow, error) {
	rows, err := s.db.QueryContext(ctx, mysqlComponentsQuery)
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
	return out, rows.Err()
}

func (s *MySQLSource) MatchRows(ctx context.Context) ([]MatchRow, error) {
	rows, err := s.db.QueryContext(ctx, mysqlMatchesQuery)
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
	return out, rows.Err()
}

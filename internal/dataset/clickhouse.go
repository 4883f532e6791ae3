package dataset

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseSource reads the match history from the tennis.matches table.
// The checklist is not kept in ClickHouse.
type ClickHouseSource struct {
	conn driver.Conn
}

func NewClickHouseSource(conn driver.Conn) *ClickHouseSource {
	return &ClickHouseSource{conn: conn}
}

// OpenClickHouse connects using a clickhouse:// DSN.
func OpenClickHouse(ctx context.Context, dsn string) (driver.Conn, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	return conn, nil
}

func (s *ClickHouseSource) Name() string { return "clickhouse" }

func (s *ClickHouseSource) MatchRows(ctx context.Context) ([]MatchRow, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT
			toString(match_date),
			tournament,
			category,
			player1,
			player2,
			winner
		FROM tennis.matches
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query tennis.matches: %w", err)
	}
	defer rows.Close()

	out := []MatchRow{}
	for rows.Next() {
		var r MatchRow
		if err := rows.Scan(&r.Date, &r.Tournament, &r.Category, &r.Player1, &r.Player2, &r.Winner); err != nil {
			return nil, fmt.Errorf("scan tennis.matches: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tennis.matches: %w", err)
	}
	return out, nil
}

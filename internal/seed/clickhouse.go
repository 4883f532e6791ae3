package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouse batch-inserts the match history. The checklist is not stored in ClickHouse.
type ClickHouse struct {
	conn driver.Conn
}

func NewClickHouse(conn driver.Conn) *ClickHouse {
	return &ClickHouse{conn: conn}
}

func (c *ClickHouse) Name() string { return "clickhouse" }

func (c *ClickHouse) Migrate(ctx context.Context, schema string) error {
	// ClickHouse executes one statement per call.
	for _, stmt := range statements(schema) {
		if err := c.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (c *ClickHouse) Seed(ctx context.Context, ds Dataset) error {
	if err := c.conn.Exec(ctx, "TRUNCATE TABLE IF EXISTS tennis.matches"); err != nil {
		return fmt.Errorf("truncate tennis.matches: %w", err)
	}

	batch, err := c.conn.PrepareBatch(ctx, `
		INSERT INTO tennis.matches (seq, match_date, tournament, category, player1, player2, winner)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i, row := range ds.Matches {
		date, err := matchDate(row)
		if err != nil {
			batch.Abort()
			return err
		}
		if err := batch.Append(uint32(i), date, row.Tournament, row.Category, row.Player1, row.Player2, row.Winner); err != nil {
			batch.Abort()
			return fmt.Errorf("append match %d: %w", i, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return line
}

package seed

import (
	"context"
	"database/sql"
	"fmt"
)

// MySQL writes both datasets with prepared inserts inside one transaction.
type MySQL struct {
	db *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

func (m *MySQL) Name() string { return "mysql" }

func (m *MySQL) Migrate(ctx context.Context, schema string) error {
	// DDL commits implicitly in MySQL, so statements run outside a transaction.
	for _, stmt := range statements(schema) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (m *MySQL) Seed(ctx context.Context, ds Dataset) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"checklist_components", "matches"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	insertComponent, err := tx.PrepareContext(ctx, `
		INSERT INTO checklist_components
			(seq, id, category, component, accessibility, real_time_available, data_source, evidence_based)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare checklist insert: %w", err)
	}
	defer insertComponent.Close()
	for i, c := range ds.Components {
		if _, err := insertComponent.ExecContext(ctx, i, c.ID, c.Category, c.Component, c.Accessibility, c.RealTimeAvailable, c.DataSource, c.EvidenceBased); err != nil {
			return fmt.Errorf("insert component %s: %w", c.ID, err)
		}
	}

	insertMatch, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (seq, match_date, tournament, category, player1, player2, winner)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare match insert: %w", err)
	}
	defer insertMatch.Close()
	for i, row := range ds.Matches {
		// The DATE column takes the stored YYYY-MM-DD form as is.
		if _, err := insertMatch.ExecContext(ctx, i, row.Date, row.Tournament, row.Category, row.Player1, row.Player2, row.Winner); err != nil {
			return fmt.Errorf("insert match %d: %w", i, err)
		}
	}

	return tx.Commit()
}

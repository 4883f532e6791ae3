package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PgBeginner starts transactions; satisfied by *pgxpool.Pool.
type PgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres writes both datasets with COPY inside one transaction.
type Postgres struct {
	db PgBeginner
}

func NewPostgres(db PgBeginner) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) Migrate(ctx context.Context, schema string) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return tx.Commit(ctx)
}

func (p *Postgres) Seed(ctx context.Context, ds Dataset) error {
	components := make([][]any, 0, len(ds.Components))
	for i, c := range ds.Components {
		components = append(components, []any{
			i, c.ID, c.Category, c.Component, c.Accessibility, c.RealTimeAvailable, c.DataSource, c.EvidenceBased,
		})
	}
	matches := make([][]any, 0, len(ds.Matches))
	for i, m := range ds.Matches {
		date, err := matchDate(m)
		if err != nil {
			return err
		}
		matches = append(matches, []any{i, date, m.Tournament, m.Category, m.Player1, m.Player2, m.Winner})
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE checklist_components, matches"); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"checklist_components"},
		[]string{"seq", "id", "category", "component", "accessibility", "real_time_available", "data_source", "evidence_based"},
		pgx.CopyFromRows(components),
	); err != nil {
		return fmt.Errorf("copy checklist_components: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"matches"},
		[]string{"seq", "match_date", "tournament", "category", "player1", "player2", "winner"},
		pgx.CopyFromRows(matches),
	); err != nil {
		return fmt.Errorf("copy matches: %w", err)
	}
	return tx.Commit(ctx)
}

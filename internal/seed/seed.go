// Package seed writes validated datasets into the SQL back ends the dataset sources read from.
package seed

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/internal/dataset"
	"github.com/tennisframework/tennis-api/internal/models"
)

// Dataset is the pair of datasets to write, in stored order.
type Dataset struct {
	Components []dataset.ComponentRow
	Matches    []dataset.MatchRow
}

// Target is a back end the seeder can populate. Seed replaces existing rows.
type Target interface {
	Name() string
	Migrate(ctx context.Context, schema string) error
	Seed(ctx context.Context, ds Dataset) error
}

// Run applies the embedded schema for target when migrate is set, then writes ds.
func Run(ctx context.Context, target Target, schemas fs.FS, schemaPath string, migrate bool, ds Dataset, logger *zap.SugaredLogger) error {
	if migrate {
		content, err := fs.ReadFile(schemas, schemaPath)
		if err != nil {
			return fmt.Errorf("read schema %s: %w", schemaPath, err)
		}
		if err := target.Migrate(ctx, string(content)); err != nil {
			return fmt.Errorf("migrate %s: %w", target.Name(), err)
		}
		logger.Infow("Schema applied", "target", target.Name(), "schema", schemaPath)
	}

	start := time.Now()
	if err := target.Seed(ctx, ds); err != nil {
		return fmt.Errorf("seed %s: %w", target.Name(), err)
	}
	logger.Infow("Datasets seeded",
		"target", target.Name(),
		"components", len(ds.Components),
		"matches", len(ds.Matches),
		"duration", time.Since(start),
	)
	return nil
}

// statements splits a schema file for drivers that execute one statement at a time.
// Comment lines are dropped; schemas must not contain ';' inside literals.
func statements(schema string) []string {
	var lines []string
	for _, line := range strings.Split(schema, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var out []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if trimmed := strings.TrimSpace(stmt); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// matchDate parses a validated row date.
func matchDate(row dataset.MatchRow) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, row.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("match date %q: %w", row.Date, err)
	}
	return d, nil
}

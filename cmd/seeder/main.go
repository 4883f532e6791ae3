// Command seeder loads the checklist and match datasets from files (or the embedded
// sample data), validates them, and writes them into a SQL back end.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tennisframework/tennis-api/data"
	"github.com/tennisframework/tennis-api/internal/config"
	"github.com/tennisframework/tennis-api/internal/dataset"
	"github.com/tennisframework/tennis-api/internal/seed"
	"github.com/tennisframework/tennis-api/migrations"
)

func main() {
	var (
		target        string
		migrate       bool
		checklistPath string
		matchesPath   string
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Write the tennis datasets into PostgreSQL, MySQL or ClickHouse",
		Long: `seeder validates the checklist and match datasets and replaces the rows of the
selected back end with them. Connection settings come from POSTGRES_URL, MYSQL_DSN
and CLICKHOUSE_URL. ClickHouse only receives the match history.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()
			sugar := logger.Sugar()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			ds, err := loadDataset(ctx, checklistPath, matchesPath, sugar)
			if err != nil {
				return err
			}

			t, closeTarget, err := openTarget(ctx, target, cfg)
			if err != nil {
				return err
			}
			defer closeTarget()

			return seed.Run(ctx, t, migrations.FS, migrations.InitialSchema(t.Name()), migrate, ds, sugar)
		},
	}

	cmd.Flags().StringVar(&target, "target", config.SourcePostgres, "Back end to seed: postgres, mysql or clickhouse")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply the embedded schema before seeding")
	cmd.Flags().StringVar(&checklistPath, "checklist", "", "Checklist file (JSON or YAML); defaults to the embedded sample")
	cmd.Flags().StringVar(&matchesPath, "matches", "", "Match history file (JSON or YAML); defaults to the embedded sample")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall timeout")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDataset reads both files through the stores so only valid data is written.
func loadDataset(ctx context.Context, checklistPath, matchesPath string, logger *zap.SugaredLogger) (seed.Dataset, error) {
	var checklistSrc dataset.ChecklistSource = dataset.NewFileSource(data.FS, data.ChecklistFile)
	if checklistPath != "" {
		checklistSrc = dataset.OpenFile(checklistPath)
	}
	var matchSrc dataset.MatchSource = dataset.NewFileSource(data.FS, data.MatchesFile)
	if matchesPath != "" {
		matchSrc = dataset.OpenFile(matchesPath)
	}

	checklist, err := dataset.NewChecklistStore(checklistSrc, logger).Load(ctx)
	if err != nil {
		return seed.Dataset{}, err
	}
	matches, err := dataset.NewMatchStore(matchSrc, logger).Load(ctx)
	if err != nil {
		return seed.Dataset{}, err
	}
	return seed.Dataset{Components: checklist.Rows(), Matches: matches.Rows()}, nil
}

func openTarget(ctx context.Context, name string, cfg *config.Config) (seed.Target, func(), error) {
	switch name {
	case config.SourcePostgres:
		if cfg.PostgresURL == "" {
			return nil, nil, fmt.Errorf("missing required environment variable: POSTGRES_URL")
		}
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return seed.NewPostgres(pool), pool.Close, nil
	case config.SourceMySQL:
		if cfg.MySQLDSN == "" {
			return nil, nil, fmt.Errorf("missing required environment variable: MYSQL_DSN")
		}
		db, err := dataset.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return seed.NewMySQL(db), func() { db.Close() }, nil
	case config.SourceClickHouse:
		if cfg.ClickHouseURL == "" {
			return nil, nil, fmt.Errorf("missing required environment variable: CLICKHOUSE_URL")
		}
		conn, err := dataset.OpenClickHouse(ctx, cfg.ClickHouseURL)
		if err != nil {
			return nil, nil, err
		}
		return seed.NewClickHouse(conn), func() { conn.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown target %q (want postgres, mysql or clickhouse)", name)
	}
}

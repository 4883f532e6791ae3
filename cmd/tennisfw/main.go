// Command tennisfw queries the tennis prediction framework datasets and serves them over HTTP.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tennisframework/tennis-api/internal/config"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger

	// Global flags
	verbose       bool
	jsonOut       bool
	timeout       time.Duration
	checklistPath string
	matchesPath   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tennisfw",
		Short: "Tennis prediction framework datasets, reports and placeholder predictions",
		Long: `tennisfw loads the component checklist and the match history and answers
queries over them.

Run without arguments to print the framework summary report.
Datasets come from the embedded sample data unless CHECKLIST_SOURCE / MATCHES_SOURCE
or the --checklist / --matches flags select another source.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runReport,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print results as JSON")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "Dataset load timeout")
	root.PersistentFlags().StringVar(&a.checklistPath, "checklist", "", "Checklist file (JSON or YAML); overrides CHECKLIST_SOURCE")
	root.PersistentFlags().StringVar(&a.matchesPath, "matches", "", "Match history file (JSON or YAML); overrides MATCHES_SOURCE")

	root.AddCommand(
		a.checklistCmd(),
		a.matchesCmd(),
		a.playerCmd(),
		a.h2hCmd(),
		a.predictCmd(),
		a.validateCmd(),
		a.serveCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.checklistPath != "" {
		cfg.ChecklistSource = config.SourceFile
		cfg.ChecklistPath = a.checklistPath
	}
	if a.matchesPath != "" {
		cfg.MatchesSource = config.SourceFile
		cfg.MatchesPath = a.matchesPath
	}
	a.cfg = cfg

	// One-shot commands stay quiet unless asked; the server logs at LOG_LEVEL.
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if cmd.Name() != "serve" && level < zapcore.WarnLevel {
		level = zapcore.WarnLevel
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if a.logger, err = zcfg.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tennisframework/tennis-api/internal/models"
)

// withFramework loads the datasets under the load timeout and runs fn against them.
func (a *app) withFramework(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	rt, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt)
}

// emit writes v as JSON with --json, otherwise through text.
func (a *app) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func (a *app) runReport(cmd *cobra.Command, args []string) error {
	return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
		report := rt.framework.SummaryReport()
		return a.emit(cmd, map[string]string{"report": report}, func(w io.Writer) {
			io.WriteString(w, report)
		})
	})
}

func (a *app) checklistCmd() *cobra.Command {
	var (
		list                        bool
		category                    string
		realTime, public, evidenced bool
	)
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Summarize or list checklist components",
		Long: `Without filters, prints checklist totals and per-category counts.
With --list or any filter, lists the matching components. Filters combine with AND.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
				checklist := rt.framework.Current().Checklist
				filtered := list || category != "" || realTime || public || evidenced

				if !filtered {
					summary := checklist.Summary()
					return a.emit(cmd, summary, func(w io.Writer) {
						fmt.Fprintf(w, "Total components:\t%d\n", summary.TotalComponents)
						fmt.Fprintf(w, "Categories:\t%d\n", summary.Categories)
						fmt.Fprintf(w, "Real-time available:\t%d\n", summary.RealTimeAvailable)
						fmt.Fprintf(w, "Evidence-based:\t%d\n", summary.EvidenceBased)
						fmt.Fprintf(w, "Publicly available:\t%d\n", summary.PubliclyAvailable)
						fmt.Fprintln(w)
						for _, c := range checklist.Categories() {
							fmt.Fprintf(w, "  %s\t%d\n", c, len(checklist.ByCategory(c)))
						}
					})
				}

				components := checklist.All()
				if category != "" {
					components = checklist.ByCategory(category)
				}
				components = keepComponents(components, func(c models.ComponentRecord) bool {
					return (!realTime || c.RealTimeAvailable) && (!public || c.IsPublic()) && (!evidenced || c.EvidenceBased)
				})
				return a.emit(cmd, components, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tCATEGORY\tCOMPONENT\tACCESSIBILITY\tREAL-TIME\tEVIDENCE")
					for _, c := range components {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Category, c.Component, c.Accessibility, yesNo(c.RealTimeAvailable), yesNo(c.EvidenceBased))
					}
				})
			})
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List components instead of the summary")
	cmd.Flags().StringVar(&category, "category", "", "Only components in this category")
	cmd.Flags().BoolVar(&realTime, "real-time", false, "Only components available in real time")
	cmd.Flags().BoolVar(&public, "public", false, "Only publicly available components")
	cmd.Flags().BoolVar(&evidenced, "evidence", false, "Only evidence-based components")
	return cmd
}

func (a *app) matchesCmd() *cobra.Command {
	var player, tournament string
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Summarize or list match history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
				history := rt.framework.Current().Matches

				if player == "" && tournament == "" {
					summary := history.Summary()
					return a.emit(cmd, summary, func(w io.Writer) {
						fmt.Fprintf(w, "Total matches:\t%d\n", summary.TotalMatches)
						fmt.Fprintf(w, "Unique players:\t%d\n", summary.UniquePlayers)
						fmt.Fprintf(w, "Unique tournaments:\t%d\n", summary.UniqueTournaments)
						if summary.TotalMatches > 0 {
							fmt.Fprintf(w, "Date range:\t%s to %s\n", summary.FirstDate, summary.LastDate)
						}
						for _, c := range models.MatchCategories {
							fmt.Fprintf(w, "%s:\t%d\n", c, summary.ByCategory[c])
						}
					})
				}

				matches := history.All()
				if player != "" {
					matches = history.ByPlayer(player)
				}
				if tournament != "" {
					kept := []models.MatchRecord{}
					for _, m := range matches {
						if m.Tournament == tournament {
							kept = append(kept, m)
						}
					}
					matches = kept
				}
				return a.emit(cmd, matches, func(w io.Writer) { writeMatches(w, matches) })
			})
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "Only matches involving this player")
	cmd.Flags().StringVar(&tournament, "tournament", "", "Only matches from this tournament")
	return cmd
}

func (a *app) playerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <name>",
		Short: "Show a player's win/loss record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
				s := rt.framework.AnalyzePlayer(ctx, args[0])
				return a.emit(cmd, s, func(w io.Writer) {
					fmt.Fprintf(w, "Player:\t%s\n", s.Player)
					fmt.Fprintf(w, "Matches:\t%d\n", s.TotalMatches)
					fmt.Fprintf(w, "Wins:\t%d\n", s.Wins)
					fmt.Fprintf(w, "Losses:\t%d\n", s.Losses)
					fmt.Fprintf(w, "Win percentage:\t%.1f%%\n", s.WinPercentage*100)
				})
			})
		},
	}
}

func (a *app) h2hCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "h2h <player1> <player2>",
		Short: "Show the head-to-head record of two players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
				rec := rt.framework.Current().HeadToHeadRecord(args[0], args[1])
				return a.emit(cmd, rec, func(w io.Writer) {
					fmt.Fprintf(w, "%s %d - %d %s\n\n", rec.Player1, rec.Player1Wins, rec.Player2Wins, rec.Player2)
					writeMatches(w, rec.Matches)
				})
			})
		},
	}
}

func (a *app) predictCmd() *cobra.Command {
	var surface, level string
	cmd := &cobra.Command{
		Use:   "predict <player1> <player2>",
		Short: "Predict a match outcome (placeholder predictor)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
				pred, err := rt.framework.PredictMatchOutcome(ctx, models.PredictionRequest{
					Player1:         args[0],
					Player2:         args[1],
					Surface:         surface,
					TournamentLevel: level,
				})
				if err != nil {
					return err
				}
				return a.emit(cmd, pred, func(w io.Writer) {
					fmt.Fprintf(w, "Match:\t%s vs %s (%s, %s)\n", pred.Player1, pred.Player2, pred.Surface, pred.TournamentLevel)
					fmt.Fprintf(w, "Predicted winner:\t%s\n", pred.PredictedWinner)
					fmt.Fprintf(w, "Confidence:\t%.2f\n", pred.Confidence)
					fmt.Fprintf(w, "Components analyzed:\t%d\n", pred.ComponentsAnalyzed)
					if pred.Placeholder {
						fmt.Fprintln(w, "Note:\tplaceholder prediction, no model is applied")
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&surface, "surface", models.DefaultSurface, "Court surface")
	cmd.Flags().StringVar(&level, "level", models.DefaultTournamentLevel, "Tournament level")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var tournament, category string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Score the predictor against the recorded match results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withFramework(cmd, func(ctx context.Context, rt *runtime) error {
				history := rt.framework.Current().Matches
				matches := history.All()
				if tournament != "" {
					matches = history.ByTournament(tournament)
				}
				if category != "" {
					kept := []models.MatchRecord{}
					for _, m := range matches {
						if m.Category == category {
							kept = append(kept, m)
						}
					}
					matches = kept
				}

				report, err := rt.framework.ValidatePredictions(ctx, matches)
				if err != nil {
					return err
				}
				return a.emit(cmd, report, func(w io.Writer) {
					fmt.Fprintf(w, "Matches tested:\t%d\n", report.TotalMatchesTested)
					fmt.Fprintf(w, "Correct:\t%d\n", report.CorrectPredictions)
					fmt.Fprintf(w, "Accuracy:\t%.2f%%\n", report.AccuracyPercentage)
					writeSegments(w, "Category", report.CategoryPerformance)
					writeSegments(w, "Tournament", report.TournamentPerformance)
					if report.Placeholder {
						fmt.Fprintln(w, "\nNote:\tplaceholder predictor, accuracy reflects player ordering only")
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&tournament, "tournament", "", "Only matches from this tournament")
	cmd.Flags().StringVar(&category, "category", "", "Only matches in this category")
	return cmd
}

func keepComponents(components []models.ComponentRecord, keep func(models.ComponentRecord) bool) []models.ComponentRecord {
	out := []models.ComponentRecord{}
	for _, c := range components {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func writeMatches(w io.Writer, matches []models.MatchRecord) {
	fmt.Fprintln(w, "DATE\tTOURNAMENT\tCATEGORY\tPLAYER 1\tPLAYER 2\tWINNER")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", m.Date.Format(models.DateLayout), m.Tournament, m.Category, m.Player1, m.Player2, m.Winner)
	}
}

func writeSegments(w io.Writer, label string, segments map[string]models.SegmentPerformance) {
	if len(segments) == 0 {
		return
	}
	keys := make([]string, 0, len(segments))
	for k := range segments {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fmt.Fprintf(w, "\n%s\tTESTED\tCORRECT\tACCURACY\n", label)
	for _, k := range keys {
		s := segments[k]
		fmt.Fprintf(w, "  %s\t%d\t%d\t%.2f%%\n", k, s.Tested, s.Correct, s.AccuracyPercentage)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

package cmd

import (
	"fmt"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/stats"
	"github.com/abhisek/gramiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc := stats.NewService(st.Attempts())

		sections, err := svc.SectionStats(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Sections")
		for _, s := range sections {
			trend, err := svc.SectionTrend(ctx, s.Section, stats.DefaultTrendWindow)
			if err != nil {
				return err
			}
			fmt.Printf("  %-16s %3.0f%%  (%d/%d)  %s\n",
				catalog.DisplayName(s.Section), s.Accuracy*100, s.Correct, s.Total,
				formatTrend(trend))
		}

		daily, err := svc.DailyProgress(ctx, 14)
		if err != nil {
			return err
		}
		if len(daily) > 0 {
			fmt.Println("\nLast 14 days")
			for _, day := range daily {
				fmt.Printf("  %s  %3d answered  %3d correct\n", day.Date, day.Total, day.Correct)
			}
		}

		return nil
	},
}

func formatTrend(tr stats.TrendResult) string {
	switch tr.Status {
	case stats.TrendImproving:
		return fmt.Sprintf("improving (%+d)", tr.Improvement)
	case stats.TrendDeclining:
		return fmt.Sprintf("declining (%+d)", tr.Improvement)
	case stats.TrendStable:
		return "stable"
	default:
		return "too few answers"
	}
}

package cmd

import (
	"fmt"

	"github.com/abhisek/gramiz/internal/app"
	"github.com/abhisek/gramiz/internal/quizgen"
	"github.com/abhisek/gramiz/internal/stats"
	"github.com/abhisek/gramiz/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	statsSvc := stats.NewService(st.Attempts())

	return app.Run(app.Options{
		Stats:     statsSvc,
		Generator: quizgen.New(statsSvc, nil),
	})
}

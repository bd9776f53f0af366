package cmd

import (
	"fmt"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the built-in question books",
	Run: func(cmd *cobra.Command, args []string) {
		for _, book := range catalog.Books() {
			fmt.Printf("%s  (%s)\n", book.Title, book.ID)
			if book.Subtitle != "" {
				fmt.Printf("  %s\n", book.Subtitle)
			}
			for _, section := range catalog.AllSections() {
				qs := book.QuestionsBySection(section)
				if len(qs) == 0 {
					continue
				}
				fmt.Printf("  %-16s %d questions\n", catalog.DisplayName(section), len(qs))
			}
			fmt.Printf("  %-16s %d questions\n", "Total", book.QuestionCount())
			fmt.Println()
		}
	},
}

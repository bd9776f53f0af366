package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/answer"
	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/theme"
)

// renderQuestion renders the active question with the blank highlighted.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.session.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	n, total := s.session.Position()
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + catalog.DisplayName(q.Section))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			n, total,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.session.Score(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	bar := components.NewProgressBar("", s.session.Progress(), false, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if q.Context != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(q.Context))
		b.WriteString("\n\n")
	}

	text := strings.Replace(q.Text, catalog.BlankMarker,
		theme.Blank.Render(catalog.BlankMarker), 1)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(text))
	b.WriteString("\n\n")

	if answer.AllowsEmpty(q.Correct) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(`Type "-" if no word is needed`))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))

	return b.String()
}

// renderFeedback renders the graded answer with the rule and examples.
func (s *QuizScreen) renderFeedback(width int) string {
	q := s.session.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if s.session.LastCorrect() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Accepted: " + formatAccepted(q.Correct)))
	}
	b.WriteString("\n\n")

	// The sentence with the blank filled in.
	filled := strings.Replace(q.Text, catalog.BlankMarker,
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(displayAnswer(q.Correct)), 1)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(filled))
	b.WriteString("\n\n")

	if q.Rule != "" {
		rule := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Rule)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rule))
		b.WriteString("\n\n")
	}

	for _, ex := range q.Examples {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("· "+ex)))
		b.WriteString("\n")
	}
	if len(q.Examples) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answers you already gave are saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Picking your questions...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

// displayAnswer picks the answer shown in the filled sentence. The dash
// conventions read poorly inline, so they display as an empty gap note.
func displayAnswer(accepted []string) string {
	for _, a := range accepted {
		switch a {
		case "", "-", "--":
			continue
		}
		return a
	}
	return "(no word)"
}

// formatAccepted joins the accepted answers for the feedback line,
// rendering the empty conventions readably.
func formatAccepted(accepted []string) string {
	parts := make([]string, 0, len(accepted))
	for _, a := range accepted {
		switch a {
		case "", "-", "--":
			a = "(no word)"
		}
		parts = append(parts, a)
	}
	// Collapse duplicates introduced by the rewrite above.
	seen := make(map[string]bool, len(parts))
	out := parts[:0]
	for _, p := range parts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

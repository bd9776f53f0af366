package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/quizgen"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	quizscreen "github.com/abhisek/gramiz/internal/screens/quiz"
	statsscreen "github.com/abhisek/gramiz/internal/screens/stats"
	"github.com/abhisek/gramiz/internal/stats"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/theme"
)

// overviewMsg carries the lifetime tallies shown above the menu.
type overviewMsg struct {
	Correct int
	Total   int
	Err     error
}

// HomeScreen is the book picker and entry point of the application.
type HomeScreen struct {
	statsSvc  *stats.Service
	generator *quizgen.Generator

	menu    components.Menu
	correct int
	total   int
	loaded  bool
	loadErr string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen over the embedded book catalog.
func New(statsSvc *stats.Service, generator *quizgen.Generator) *HomeScreen {
	h := &HomeScreen{
		statsSvc:  statsSvc,
		generator: generator,
	}

	var items []components.MenuItem
	for _, book := range catalog.Books() {
		b := book
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(b.Title),
			Detail: fmt.Sprintf("%s · %d questions", b.Subtitle, b.QuestionCount()),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quizscreen.New(b, generator, statsSvc),
					}
				}
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "STATISTICS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(statsSvc)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		sectionStats, err := h.statsSvc.SectionStats(ctx)
		if err != nil {
			return overviewMsg{Err: err}
		}
		var correct, total int
		for _, st := range sectionStats {
			correct += st.Correct
			total += st.Total
		}
		return overviewMsg{Correct: correct, Total: total}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		if msg.Err != nil {
			h.loadErr = msg.Err.Error()
		} else {
			h.correct = msg.Correct
			h.total = msg.Total
			h.loadErr = ""
		}
		h.loaded = true
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("G R A M I Z"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("English grammar, one blank at a time"))
	b.WriteString("\n\n")

	if h.loadErr != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("Stats unavailable: " + h.loadErr))
	} else if h.loaded && h.total > 0 {
		accuracy := float64(h.correct) / float64(h.total) * 100
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Answered: %d   Correct: %d   Accuracy: %.0f%%",
				h.total, h.correct, accuracy)))
	} else if h.loaded {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("No answers yet. Pick a book to start."))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

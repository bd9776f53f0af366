package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	statssvc "github.com/abhisek/gramiz/internal/stats"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/layout"
	"github.com/abhisek/gramiz/internal/ui/theme"
)

// daysShown is how far back the daily activity list reaches.
const daysShown = 14

type statsLoadedMsg struct {
	Sections []statssvc.SectionStat
	Trends   []statssvc.TrendResult
	Daily    []statssvc.DailyStat
	Err      error
}

// StatsScreen shows per-section accuracy, trends, and daily activity.
type StatsScreen struct {
	svc *statssvc.Service

	sections []statssvc.SectionStat
	trends   []statssvc.TrendResult
	daily    []statssvc.DailyStat
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(svc *statssvc.Service) *StatsScreen {
	return &StatsScreen{svc: svc}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sections, err := s.svc.SectionStats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		trends := make([]statssvc.TrendResult, 0, len(catalog.AllSections()))
		for _, section := range catalog.AllSections() {
			tr, err := s.svc.SectionTrend(ctx, section, statssvc.DefaultTrendWindow)
			if err != nil {
				return statsLoadedMsg{Err: err}
			}
			trends = append(trends, tr)
		}

		daily, err := s.svc.DailyProgress(ctx, daysShown)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}

		return statsLoadedMsg{Sections: sections, Trends: trends, Daily: daily}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sections = msg.Sections
			s.trends = msg.Trends
			s.daily = msg.Daily
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Crunching your numbers...")
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Sections")))
	b.WriteString("\n\n")

	trendBySection := make(map[catalog.Section]statssvc.TrendResult, len(s.trends))
	for _, tr := range s.trends {
		trendBySection[tr.Section] = tr
	}

	barWidth := min(width-30, 40)
	for _, st := range s.sections {
		bar := components.NewProgressBar(
			fmt.Sprintf("%-16s", catalog.DisplayName(st.Section)),
			st.Accuracy, true, barWidth+22)

		line := bar.View()
		line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("(%d/%d)", st.Correct, st.Total))
		line += "  " + renderTrend(trendBySection[st.Section])

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Last %d days", daysShown))))
	b.WriteString("\n\n")

	if len(s.daily) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No activity yet.")))
		b.WriteString("\n")
	}
	for _, day := range s.daily {
		var accuracy float64
		if day.Total > 0 {
			accuracy = float64(day.Correct) / float64(day.Total) * 100
		}
		line := fmt.Sprintf("%s   %3d answered   %3.0f%% correct",
			day.Date, day.Total, accuracy)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTrend formats a trend as a colored direction marker.
func renderTrend(tr statssvc.TrendResult) string {
	switch tr.Status {
	case statssvc.TrendImproving:
		return lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("▲ %+d", tr.Improvement))
	case statssvc.TrendDeclining:
		return lipgloss.NewStyle().Foreground(theme.Error).
			Render(fmt.Sprintf("▼ %+d", tr.Improvement))
	case statssvc.TrendStable:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("■ steady")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("too few answers")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

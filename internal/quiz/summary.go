package quiz

import (
	"time"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/stats"
)

// SectionDelta pairs a section's accuracy before the quiz with its
// accuracy after, both as integer percentages.
type SectionDelta struct {
	Section catalog.Section
	Before  int
	After   int
	Change  int
}

// Summary is what the results screen shows after a completed session.
type Summary struct {
	BookTitle string
	Score     int
	Total     int
	Accuracy  float64
	Duration  time.Duration
	Deltas    []SectionDelta
}

// BuildSummary combines the session with a fresh post-quiz stats
// snapshot. Sections untouched before and after are omitted from the
// delta table.
func BuildSummary(s *Session, after []stats.SectionStat) *Summary {
	before := make(map[catalog.Section]stats.SectionStat, len(s.StartStats))
	for _, st := range s.StartStats {
		before[st.Section] = st
	}

	var deltas []SectionDelta
	for _, st := range after {
		b := before[st.Section]
		if b.Total == 0 && st.Total == 0 {
			continue
		}
		d := SectionDelta{
			Section: st.Section,
			Before:  pct(b.Accuracy),
			After:   pct(st.Accuracy),
		}
		d.Change = d.After - d.Before
		deltas = append(deltas, d)
	}

	var accuracy float64
	if len(s.Questions) > 0 {
		accuracy = float64(s.score) / float64(len(s.Questions))
	}

	title := ""
	if s.Book != nil {
		title = s.Book.Title
	}

	return &Summary{
		BookTitle: title,
		Score:     s.score,
		Total:     len(s.Questions),
		Accuracy:  accuracy,
		Duration:  time.Since(s.StartTime),
		Deltas:    deltas,
	}
}

func pct(v float64) int {
	return int(v*100 + 0.5)
}

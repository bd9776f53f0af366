package stats

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/store"
)

// DefaultTrendWindow is the window size used by the screens.
const DefaultTrendWindow = 10

// trendThreshold is the accuracy delta, in percentage points, that
// separates stable from improving/declining.
const trendThreshold = 10

// Service derives all statistics from the attempt log. A storage error
// always surfaces to the caller: stats must never be computed from an
// assumed-empty log.
type Service struct {
	attempts store.AttemptRepo
	now      func() time.Time
}

// NewService creates a stats service over the given attempt repo.
func NewService(attempts store.AttemptRepo) *Service {
	return &Service{attempts: attempts, now: time.Now}
}

// RecordAnswer appends one attempt to the log, stamped with the quiz
// session it was given in. This is the only write path for statistics.
func (s *Service) RecordAnswer(ctx context.Context, sessionID, questionID string, section catalog.Section, correct bool) error {
	_, err := s.attempts.Append(ctx, sessionID, questionID, string(section), correct, s.now().UTC())
	return err
}

// SectionStats returns one SectionStat per member of the fixed section
// set. The per-section counts are independent reads and run
// concurrently.
func (s *Service) SectionStats(ctx context.Context) ([]SectionStat, error) {
	sections := catalog.AllSections()
	results := make([]SectionStat, len(sections))

	g, gctx := errgroup.WithContext(ctx)
	for i, section := range sections {
		g.Go(func() error {
			total, err := s.attempts.CountBySection(gctx, string(section))
			if err != nil {
				return err
			}
			correct, err := s.attempts.CountCorrectBySection(gctx, string(section))
			if err != nil {
				return err
			}
			stat := SectionStat{Section: section, Correct: correct, Total: total}
			if total > 0 {
				stat.Accuracy = float64(correct) / float64(total)
			}
			results[i] = stat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MasteredQuestionIDs returns the set of question ids with at least one
// correct attempt. Mastery is sticky: later wrong answers never remove
// an id from this set, because the log is append-only and this is a
// pure projection of it.
func (s *Service) MasteredQuestionIDs(ctx context.Context) (map[string]bool, error) {
	ids, err := s.attempts.CorrectQuestionIDs(ctx)
	if err != nil {
		return nil, err
	}
	mastered := make(map[string]bool, len(ids))
	for _, id := range ids {
		mastered[id] = true
	}
	return mastered, nil
}

// SectionTrend compares the newest windowSize attempts for a section
// against the windowSize attempts before them.
func (s *Service) SectionTrend(ctx context.Context, section catalog.Section, windowSize int) (TrendResult, error) {
	history, err := s.attempts.RecentBySection(ctx, string(section), windowSize*2)
	if err != nil {
		return TrendResult{}, err
	}

	if len(history) < windowSize {
		return TrendResult{Section: section, Status: TrendInsufficientData}, nil
	}

	recent := history[:windowSize]
	previous := history[windowSize:]

	current := windowAccuracy(recent)
	prev := current // no second window yet: no trend, report flat
	status := TrendStable
	if len(previous) > 0 {
		prev = windowAccuracy(previous)
		diff := current - prev
		switch {
		case diff >= trendThreshold:
			status = TrendImproving
		case diff <= -trendThreshold:
			status = TrendDeclining
		}
	}

	return TrendResult{
		Section:          section,
		CurrentAccuracy:  roundPct(current),
		PreviousAccuracy: roundPct(prev),
		Improvement:      roundPct(current - prev),
		Status:           status,
	}, nil
}

// DailyProgress aggregates attempts per UTC calendar day, starting from
// the UTC midnight daysBack days before now, sorted ascending. Days with
// no attempts are omitted.
func (s *Service) DailyProgress(ctx context.Context, daysBack int) ([]DailyStat, error) {
	today := s.now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysBack)

	attempts, err := s.attempts.Since(ctx, start)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*DailyStat)
	for _, a := range attempts {
		key := a.Timestamp.UTC().Format(time.DateOnly)
		day := grouped[key]
		if day == nil {
			day = &DailyStat{Date: key}
			grouped[key] = day
		}
		day.Total++
		if a.Correct {
			day.Correct++
		}
	}

	out := make([]DailyStat, 0, len(grouped))
	for _, day := range grouped {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// windowAccuracy returns the percentage of correct attempts in a window.
func windowAccuracy(window []store.AttemptRecord) float64 {
	if len(window) == 0 {
		return 0
	}
	correct := 0
	for _, a := range window {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(window)) * 100
}

func roundPct(v float64) int {
	return int(math.Round(v))
}

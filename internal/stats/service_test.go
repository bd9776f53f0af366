package stats

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/store"
)

// memRepo is an in-memory AttemptRepo for deterministic tests.
type memRepo struct {
	mu       sync.Mutex
	attempts []store.AttemptRecord
	failWith error
}

func (m *memRepo) Append(_ context.Context, sessionID, questionID, section string, correct bool, at time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	id := len(m.attempts) + 1
	m.attempts = append(m.attempts, store.AttemptRecord{
		ID: id, SessionID: sessionID, QuestionID: questionID, Section: section, Correct: correct, Timestamp: at,
	})
	return id, nil
}

func (m *memRepo) CountBySection(_ context.Context, section string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	n := 0
	for _, a := range m.attempts {
		if a.Section == section {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountCorrectBySection(_ context.Context, section string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	n := 0
	for _, a := range m.attempts {
		if a.Section == section && a.Correct {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountAll(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts), nil
}

func (m *memRepo) CountCorrect(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.attempts {
		if a.Correct {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) RecentBySection(_ context.Context, section string, limit int) ([]store.AttemptRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []store.AttemptRecord
	for _, a := range m.attempts {
		if a.Section == section {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Since(_ context.Context, t time.Time) ([]store.AttemptRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []store.AttemptRecord
	for _, a := range m.attempts {
		if !a.Timestamp.Before(t) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *memRepo) CorrectQuestionIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	seen := make(map[string]bool)
	var ids []string
	for _, a := range m.attempts {
		if a.Correct && !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			ids = append(ids, a.QuestionID)
		}
	}
	return ids, nil
}

func (m *memRepo) Reset(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.attempts)
	m.attempts = nil
	return n, nil
}

var _ store.AttemptRepo = (*memRepo)(nil)

func newTestService(repo *memRepo, now time.Time) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return now }
	return s
}

func seed(t *testing.T, repo *memRepo, questionID string, section catalog.Section, correct bool, at time.Time) {
	t.Helper()
	if _, err := repo.Append(context.Background(), "seed-session", questionID, string(section), correct, at); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func find(stats []SectionStat, section catalog.Section) SectionStat {
	for _, st := range stats {
		if st.Section == section {
			return st
		}
	}
	return SectionStat{}
}

func TestSectionStatsEmptyLog(t *testing.T) {
	svc := newTestService(&memRepo{}, time.Now())

	got, err := svc.SectionStats(context.Background())
	if err != nil {
		t.Fatalf("section stats: %v", err)
	}
	if len(got) != len(catalog.AllSections()) {
		t.Fatalf("len = %d, want %d", len(got), len(catalog.AllSections()))
	}
	for _, st := range got {
		if st.Accuracy != 0 || st.Total != 0 || st.Correct != 0 {
			t.Errorf("section %s: want zeroed stat, got %+v", st.Section, st)
		}
	}
}

func TestSectionStatsAccuracy(t *testing.T) {
	repo := &memRepo{}
	now := time.Now().UTC()
	seed(t, repo, "q1", catalog.SectionVerbs, true, now)
	seed(t, repo, "q2", catalog.SectionVerbs, true, now)
	seed(t, repo, "q3", catalog.SectionVerbs, false, now)
	seed(t, repo, "q4", catalog.SectionArticles, false, now)

	svc := newTestService(repo, now)
	got, err := svc.SectionStats(context.Background())
	if err != nil {
		t.Fatalf("section stats: %v", err)
	}

	for _, st := range got {
		if st.Accuracy < 0 || st.Accuracy > 1 {
			t.Errorf("section %s accuracy %f out of [0,1]", st.Section, st.Accuracy)
		}
	}

	verbs := find(got, catalog.SectionVerbs)
	if verbs.Total != 3 || verbs.Correct != 2 {
		t.Errorf("verbs = %+v, want total 3 correct 2", verbs)
	}
	if diff := verbs.Accuracy - 2.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("verbs accuracy = %f, want 2/3", verbs.Accuracy)
	}

	articles := find(got, catalog.SectionArticles)
	if articles.Total != 1 || articles.Correct != 0 || articles.Accuracy != 0 {
		t.Errorf("articles = %+v, want total 1 correct 0", articles)
	}
}

func TestSectionStatsPropagatesStorageError(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := newTestService(&memRepo{failWith: boom}, time.Now())

	_, err := svc.SectionStats(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped storage error", err)
	}
}

func TestMasteryIsSticky(t *testing.T) {
	repo := &memRepo{}
	now := time.Now().UTC()
	svc := newTestService(repo, now)
	ctx := context.Background()

	seed(t, repo, "q1", catalog.SectionVerbs, true, now)

	mastered, err := svc.MasteredQuestionIDs(ctx)
	if err != nil {
		t.Fatalf("mastered: %v", err)
	}
	if !mastered["q1"] {
		t.Fatal("q1 should be mastered after a correct attempt")
	}

	// Later wrong answers never unmaster.
	seed(t, repo, "q1", catalog.SectionVerbs, false, now.Add(time.Minute))
	seed(t, repo, "q1", catalog.SectionVerbs, false, now.Add(2*time.Minute))

	mastered, err = svc.MasteredQuestionIDs(ctx)
	if err != nil {
		t.Fatalf("mastered: %v", err)
	}
	if !mastered["q1"] {
		t.Fatal("mastery must be sticky across later incorrect attempts")
	}
}

func TestNeverAttemptedOrOnlyWrongIsNotMastered(t *testing.T) {
	repo := &memRepo{}
	now := time.Now().UTC()
	seed(t, repo, "q1", catalog.SectionVerbs, false, now)

	svc := newTestService(repo, now)
	mastered, err := svc.MasteredQuestionIDs(context.Background())
	if err != nil {
		t.Fatalf("mastered: %v", err)
	}
	if mastered["q1"] {
		t.Error("only-incorrect question must not be mastered")
	}
	if mastered["q2"] {
		t.Error("never-attempted question must not be mastered")
	}
}

func TestSectionTrendImproving(t *testing.T) {
	repo := &memRepo{}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Oldest 10: 5/10 correct. Newest 10: 9/10 correct.
	for i := 0; i < 10; i++ {
		seed(t, repo, "q", catalog.SectionVerbs, i < 5, base.Add(time.Duration(i)*time.Minute))
	}
	for i := 0; i < 10; i++ {
		seed(t, repo, "q", catalog.SectionVerbs, i < 9, base.Add(time.Hour+time.Duration(i)*time.Minute))
	}

	svc := newTestService(repo, base.Add(2*time.Hour))
	trend, err := svc.SectionTrend(context.Background(), catalog.SectionVerbs, 10)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if trend.Status != TrendImproving {
		t.Errorf("status = %s, want improving", trend.Status)
	}
	if trend.CurrentAccuracy != 90 || trend.PreviousAccuracy != 50 {
		t.Errorf("accuracies = %d/%d, want 90/50", trend.CurrentAccuracy, trend.PreviousAccuracy)
	}
	if trend.Improvement != 40 {
		t.Errorf("improvement = %d, want 40", trend.Improvement)
	}
}

func TestSectionTrendStableOnEqualWindows(t *testing.T) {
	repo := &memRepo{}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Both windows 7/10 correct.
	for w := 0; w < 2; w++ {
		for i := 0; i < 10; i++ {
			seed(t, repo, "q", catalog.SectionArticles, i < 7,
				base.Add(time.Duration(w)*time.Hour+time.Duration(i)*time.Minute))
		}
	}

	svc := newTestService(repo, base.Add(3*time.Hour))
	trend, err := svc.SectionTrend(context.Background(), catalog.SectionArticles, 10)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if trend.Status != TrendStable {
		t.Errorf("status = %s, want stable", trend.Status)
	}
	if trend.Improvement != 0 {
		t.Errorf("improvement = %d, want 0", trend.Improvement)
	}
}

func TestSectionTrendInsufficientData(t *testing.T) {
	repo := &memRepo{}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		seed(t, repo, "q", catalog.SectionVerbs, true, base.Add(time.Duration(i)*time.Minute))
	}

	svc := newTestService(repo, base.Add(time.Hour))
	trend, err := svc.SectionTrend(context.Background(), catalog.SectionVerbs, 10)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if trend.Status != TrendInsufficientData {
		t.Errorf("status = %s, want insufficient_data", trend.Status)
	}
	if trend.CurrentAccuracy != 0 || trend.PreviousAccuracy != 0 {
		t.Errorf("accuracies = %d/%d, want 0/0", trend.CurrentAccuracy, trend.PreviousAccuracy)
	}
}

func TestSectionTrendSingleWindowFallsBackToStable(t *testing.T) {
	repo := &memRepo{}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Exactly one full window: 8/10 correct, nothing older.
	for i := 0; i < 10; i++ {
		seed(t, repo, "q", catalog.SectionVerbs, i < 8, base.Add(time.Duration(i)*time.Minute))
	}

	svc := newTestService(repo, base.Add(time.Hour))
	trend, err := svc.SectionTrend(context.Background(), catalog.SectionVerbs, 10)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if trend.Status != TrendStable {
		t.Errorf("status = %s, want stable", trend.Status)
	}
	if trend.CurrentAccuracy != 80 || trend.PreviousAccuracy != 80 {
		t.Errorf("accuracies = %d/%d, want previous to mirror current", trend.CurrentAccuracy, trend.PreviousAccuracy)
	}
	if trend.Improvement != 0 {
		t.Errorf("improvement = %d, want 0", trend.Improvement)
	}
}

// DailyProgress groups by UTC calendar day; the tests pin timestamps to
// UTC so the day boundary is unambiguous.
func TestDailyProgressGroupsByUTCDay(t *testing.T) {
	repo := &memRepo{}
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

	seed(t, repo, "q1", catalog.SectionVerbs, true, now.AddDate(0, 0, -2))
	seed(t, repo, "q2", catalog.SectionVerbs, false, now.AddDate(0, 0, -2).Add(time.Hour))
	seed(t, repo, "q3", catalog.SectionArticles, true, now)
	// Outside the window.
	seed(t, repo, "q4", catalog.SectionVerbs, true, now.AddDate(0, 0, -10))

	svc := newTestService(repo, now)
	got, err := svc.DailyProgress(context.Background(), 7)
	if err != nil {
		t.Fatalf("daily progress: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (sparse days omitted)", len(got))
	}
	if got[0].Date != "2026-08-27" || got[0].Total != 2 || got[0].Correct != 1 {
		t.Errorf("day[0] = %+v, want 2026-08-27 total 2 correct 1", got[0])
	}
	if got[1].Date != "2026-08-29" || got[1].Total != 1 || got[1].Correct != 1 {
		t.Errorf("day[1] = %+v, want 2026-08-29 total 1 correct 1", got[1])
	}
	if got[0].Date >= got[1].Date {
		t.Error("series must be ascending by date")
	}
}

func TestRecordAnswerAppends(t *testing.T) {
	repo := &memRepo{}
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := context.Background()

	if err := svc.RecordAnswer(ctx, "sess-1", "q1", catalog.SectionPrepositions, true); err != nil {
		t.Fatalf("record answer: %v", err)
	}

	n, _ := repo.CountAll(ctx)
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	if repo.attempts[0].SessionID != "sess-1" {
		t.Errorf("session id = %q, want sess-1", repo.attempts[0].SessionID)
	}
	if repo.attempts[0].Section != string(catalog.SectionPrepositions) {
		t.Errorf("section = %q", repo.attempts[0].Section)
	}
	if !repo.attempts[0].Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", repo.attempts[0].Timestamp, now)
	}
}

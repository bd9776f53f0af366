package quiz

import (
	"testing"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/stats"
)

func testQuestions() []catalog.Question {
	return []catalog.Question{
		{
			ID: "q1", Section: catalog.SectionArticles,
			Text: "He is ____ best.", Correct: []string{"the"},
		},
		{
			ID: "q2", Section: catalog.SectionPrepositions,
			Text: "They went ____ home.", Correct: []string{"-", "--"},
		},
		{
			ID: "q3", Section: catalog.SectionVerbs,
			Text: "She ____ (read) now.", Correct: []string{"is reading"},
		},
	}
}

func TestSessionWalkthrough(t *testing.T) {
	s := NewSession(nil, testQuestions(), nil)

	if s.Phase() != PhasePresenting {
		t.Fatalf("phase = %v, want presenting", s.Phase())
	}
	if s.ID == "" {
		t.Fatal("session id must be set")
	}

	// q1: correct answer with noise.
	correct, ok := s.Submit(" The ")
	if !ok || !correct {
		t.Fatalf("submit q1 = (%v, %v), want correct", correct, ok)
	}
	if s.Phase() != PhaseAnswered || s.Score() != 1 {
		t.Fatalf("after q1: phase=%v score=%d", s.Phase(), s.Score())
	}

	if !s.Continue() {
		t.Fatal("continue after q1 should keep running")
	}

	// q2: allows empty, learner types the phrase.
	correct, ok = s.Submit("no preposition")
	if !ok || !correct {
		t.Fatalf("submit q2 = (%v, %v), want correct", correct, ok)
	}
	s.Continue()

	// q3: wrong answer still advances the session.
	correct, ok = s.Submit("reads")
	if !ok {
		t.Fatal("submit q3 must be accepted")
	}
	if correct {
		t.Error("wrong answer graded correct")
	}
	if s.LastCorrect() {
		t.Error("last correct should be false")
	}

	if s.Continue() {
		t.Error("continue after last question should end the session")
	}
	if s.Phase() != PhaseComplete {
		t.Errorf("phase = %v, want complete", s.Phase())
	}
	if s.Score() != 2 {
		t.Errorf("score = %d, want 2", s.Score())
	}
	if s.Current() != nil {
		t.Error("current must be nil when complete")
	}
}

func TestEmptySubmitIgnoredUnlessAllowed(t *testing.T) {
	s := NewSession(nil, testQuestions(), nil)

	// q1 requires a word: empty submit is a no-op.
	if _, ok := s.Submit("   "); ok {
		t.Fatal("blank submit on a word question must be ignored")
	}
	if s.Phase() != PhasePresenting || s.Score() != 0 {
		t.Fatalf("ignored submit mutated state: phase=%v score=%d", s.Phase(), s.Score())
	}

	s.Submit("the")
	s.Continue()

	// q2 allows empty: blank submit is graded (and correct).
	correct, ok := s.Submit("")
	if !ok || !correct {
		t.Fatalf("blank submit on empty-allowed question = (%v, %v), want correct", correct, ok)
	}
}

func TestNoReanswer(t *testing.T) {
	s := NewSession(nil, testQuestions(), nil)

	s.Submit("wrong")
	if s.Phase() != PhaseAnswered {
		t.Fatal("expected answered phase")
	}

	// A second submit in Answered must not re-grade or change score.
	if _, ok := s.Submit("the"); ok {
		t.Error("re-answer accepted")
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
}

func TestEmptyQuizIsComplete(t *testing.T) {
	s := NewSession(nil, nil, nil)
	if s.Phase() != PhaseComplete {
		t.Fatalf("phase = %v, want complete", s.Phase())
	}
	if s.Progress() != 1 {
		t.Errorf("progress = %f, want 1", s.Progress())
	}
}

func TestPositionAndProgress(t *testing.T) {
	s := NewSession(nil, testQuestions(), nil)

	n, total := s.Position()
	if n != 1 || total != 3 {
		t.Errorf("position = %d/%d, want 1/3", n, total)
	}
	if s.Progress() != 0 {
		t.Errorf("progress = %f, want 0", s.Progress())
	}

	s.Submit("the")
	if got := s.Progress(); got < 0.33 || got > 0.34 {
		t.Errorf("progress after first answer = %f, want 1/3", got)
	}
}

func TestBuildSummary(t *testing.T) {
	before := []stats.SectionStat{
		{Section: catalog.SectionVerbs, Accuracy: 0.5, Correct: 5, Total: 10},
		{Section: catalog.SectionArticles, Accuracy: 0, Correct: 0, Total: 0},
	}
	after := []stats.SectionStat{
		{Section: catalog.SectionVerbs, Accuracy: 0.6, Correct: 6, Total: 10},
		{Section: catalog.SectionArticles, Accuracy: 1, Correct: 1, Total: 1},
		{Section: catalog.SectionTranslation, Accuracy: 0, Correct: 0, Total: 0},
	}

	s := NewSession(catalog.BookByID("serene-lotus"), testQuestions(), before)
	s.Submit("the")
	s.Continue()
	s.Submit("-")
	s.Continue()
	s.Submit("is reading")
	s.Continue()

	sum := BuildSummary(s, after)
	if sum.Score != 3 || sum.Total != 3 {
		t.Errorf("score = %d/%d, want 3/3", sum.Score, sum.Total)
	}
	if sum.Accuracy != 1 {
		t.Errorf("accuracy = %f, want 1", sum.Accuracy)
	}
	if sum.BookTitle != "Serene Lotus" {
		t.Errorf("book title = %q", sum.BookTitle)
	}

	// Untouched sections are omitted; touched ones carry the delta.
	if len(sum.Deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(sum.Deltas))
	}
	verbs := sum.Deltas[0]
	if verbs.Section != catalog.SectionVerbs || verbs.Before != 50 || verbs.After != 60 || verbs.Change != 10 {
		t.Errorf("verbs delta = %+v", verbs)
	}
	articles := sum.Deltas[1]
	if articles.Section != catalog.SectionArticles || articles.After != 100 {
		t.Errorf("articles delta = %+v", articles)
	}
}

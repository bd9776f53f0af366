package quiz

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/catalog"
	sess "github.com/abhisek/gramiz/internal/quiz"
	"github.com/abhisek/gramiz/internal/quizgen"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	"github.com/abhisek/gramiz/internal/stats"
	"github.com/abhisek/gramiz/internal/store"
)

// fakeAttemptRepo implements store.AttemptRepo over a slice.
type fakeAttemptRepo struct {
	attempts []store.AttemptRecord
}

func (f *fakeAttemptRepo) Append(_ context.Context, sessionID, questionID, section string, correct bool, at time.Time) (int, error) {
	id := len(f.attempts) + 1
	f.attempts = append(f.attempts, store.AttemptRecord{
		ID: id, SessionID: sessionID, QuestionID: questionID, Section: section, Correct: correct, Timestamp: at,
	})
	return id, nil
}

func (f *fakeAttemptRepo) CountBySection(_ context.Context, section string) (int, error) {
	n := 0
	for _, a := range f.attempts {
		if a.Section == section {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptRepo) CountCorrectBySection(_ context.Context, section string) (int, error) {
	n := 0
	for _, a := range f.attempts {
		if a.Section == section && a.Correct {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptRepo) CountAll(_ context.Context) (int, error) {
	return len(f.attempts), nil
}

func (f *fakeAttemptRepo) CountCorrect(_ context.Context) (int, error) {
	n := 0
	for _, a := range f.attempts {
		if a.Correct {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptRepo) RecentBySection(_ context.Context, section string, limit int) ([]store.AttemptRecord, error) {
	var out []store.AttemptRecord
	for i := len(f.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		if f.attempts[i].Section == section {
			out = append(out, f.attempts[i])
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) Since(_ context.Context, t time.Time) ([]store.AttemptRecord, error) {
	var out []store.AttemptRecord
	for _, a := range f.attempts {
		if !a.Timestamp.Before(t) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) CorrectQuestionIDs(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, a := range f.attempts {
		if a.Correct && !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			out = append(out, a.QuestionID)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) Reset(_ context.Context) (int, error) {
	n := len(f.attempts)
	f.attempts = nil
	return n, nil
}

var _ store.AttemptRepo = (*fakeAttemptRepo)(nil)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuizScreen() (*QuizScreen, *fakeAttemptRepo) {
	repo := &fakeAttemptRepo{}
	svc := stats.NewService(repo)
	gen := quizgen.New(svc, rand.NewPCG(11, 42))
	s := New(catalog.BookByID("serene-lotus"), gen, svc)
	return s, repo
}

// setSession installs a one-question session, skipping generation.
func setSession(s *QuizScreen, questions []catalog.Question) {
	s.session = sess.NewSession(s.book, questions, nil)
}

func TestQuizScreen_StartQuiz(t *testing.T) {
	s, _ := testQuizScreen()

	msg := s.startQuiz()()
	ready, ok := msg.(quizReadyMsg)
	if !ok {
		t.Fatalf("startQuiz returned %T, want quizReadyMsg", msg)
	}
	if ready.Err != nil {
		t.Fatalf("startQuiz error: %v", ready.Err)
	}
	if got := len(ready.Session.Questions); got != sess.DefaultSize {
		t.Errorf("quiz length = %d, want %d", got, sess.DefaultSize)
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(ready)
	if scr.(*QuizScreen).session == nil {
		t.Error("session not installed after quizReadyMsg")
	}
}

func TestQuizScreen_SubmitRecordsAttempt(t *testing.T) {
	s, repo := testQuizScreen()
	setSession(s, []catalog.Question{{
		ID: "q-verbs-1", Section: catalog.SectionVerbs,
		Text: "She ____ (go) every day.", Correct: []string{"goes"},
	}})

	s.input.Model.SetValue("goes")

	var scr screen.Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*QuizScreen)

	if ss.session.Phase() != sess.PhaseAnswered {
		t.Fatal("expected feedback phase after submit")
	}
	if !ss.session.LastCorrect() {
		t.Error("expected answer to be correct")
	}

	if cmd == nil {
		t.Fatal("expected a record command after submit")
	}
	if msg := cmd(); msg.(answerRecordedMsg).Err != nil {
		t.Fatalf("record failed: %v", msg.(answerRecordedMsg).Err)
	}

	if len(repo.attempts) != 1 {
		t.Fatalf("attempts = %d, want 1", len(repo.attempts))
	}
	if repo.attempts[0].QuestionID != "q-verbs-1" || !repo.attempts[0].Correct {
		t.Errorf("logged attempt = %+v", repo.attempts[0])
	}
	if repo.attempts[0].SessionID != ss.session.ID {
		t.Errorf("attempt session id = %q, want session %q", repo.attempts[0].SessionID, ss.session.ID)
	}
	if ss.session.ID == "" {
		t.Error("session id must be non-empty")
	}
}

func TestQuizScreen_BlankSubmitIgnored(t *testing.T) {
	s, repo := testQuizScreen()
	setSession(s, []catalog.Question{{
		ID: "q1", Section: catalog.SectionArticles,
		Text: "He is ____ doctor.", Correct: []string{"a"},
	}})

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))

	if s.session.Phase() != sess.PhasePresenting {
		t.Error("blank submit must not advance the session")
	}
	if cmd != nil {
		t.Error("blank submit must not produce a record command")
	}
	if len(repo.attempts) != 0 {
		t.Errorf("attempts = %d, want 0", len(repo.attempts))
	}
}

func TestQuizScreen_FeedbackThenFinish(t *testing.T) {
	s, _ := testQuizScreen()
	setSession(s, []catalog.Question{{
		ID: "q1", Section: catalog.SectionArticles,
		Text: "He is ____ doctor.", Correct: []string{"a"},
	}})

	s.input.Model.SetValue("a")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	// Last question answered: any key ends the quiz.
	_, cmd := scr.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected a finish command after the last question")
	}

	msg := cmd()
	summary, ok := msg.(summaryReadyMsg)
	if !ok {
		t.Fatalf("finish returned %T, want summaryReadyMsg", msg)
	}
	if summary.Err != nil {
		t.Fatalf("finish error: %v", summary.Err)
	}
	if summary.Summary.Score != 1 || summary.Summary.Total != 1 {
		t.Errorf("summary = %d/%d, want 1/1", summary.Summary.Score, summary.Summary.Total)
	}
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	s, _ := testQuizScreen()
	setSession(s, []catalog.Question{{
		ID: "q1", Section: catalog.SectionArticles,
		Text: "He is ____ doctor.", Correct: []string{"a"},
	}})

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	if !scr.(*QuizScreen).showingQuitConfirm {
		t.Fatal("expected quit confirmation after Esc")
	}

	scr, _ = scr.Update(keyPress('n'))
	if scr.(*QuizScreen).showingQuitConfirm {
		t.Error("expected N to dismiss the quit confirmation")
	}

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming quit")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after confirming quit")
	}
}

func TestQuizScreen_HandlesEsc(t *testing.T) {
	s, _ := testQuizScreen()

	if s.HandlesEsc() {
		t.Error("loading screen should not intercept Esc")
	}

	setSession(s, []catalog.Question{{
		ID: "q1", Section: catalog.SectionArticles,
		Text: "He is ____ doctor.", Correct: []string{"a"},
	}})
	if !s.HandlesEsc() {
		t.Error("active quiz must intercept Esc")
	}
}

func TestQuizScreen_Views(t *testing.T) {
	s, _ := testQuizScreen()

	if s.View(80, 24) == "" {
		t.Error("expected non-empty loading view")
	}

	s.errMsg = "boom"
	if s.View(80, 24) == "" {
		t.Error("expected non-empty error view")
	}
}

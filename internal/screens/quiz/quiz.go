package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gramiz/internal/catalog"
	sess "github.com/abhisek/gramiz/internal/quiz"
	"github.com/abhisek/gramiz/internal/quizgen"
	"github.com/abhisek/gramiz/internal/router"
	"github.com/abhisek/gramiz/internal/screen"
	"github.com/abhisek/gramiz/internal/screens/results"
	"github.com/abhisek/gramiz/internal/stats"
	"github.com/abhisek/gramiz/internal/ui/components"
	"github.com/abhisek/gramiz/internal/ui/layout"
)

// QuizScreen drives one quiz session: it generates the questions,
// presents them one at a time, records each answer, and hands off to
// the results screen when the last question is done.
type QuizScreen struct {
	book      *catalog.Book
	generator *quizgen.Generator
	statsSvc  *stats.Service

	session            *sess.Session
	input              components.TextInput
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for the given book.
func New(book *catalog.Book, generator *quizgen.Generator, statsSvc *stats.Service) *QuizScreen {
	return &QuizScreen{
		book:      book,
		generator: generator,
		statsSvc:  statsSvc,
		input:     newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", 40)
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(
		s.startQuiz(),
		s.input.Init(),
	)
}

func (s *QuizScreen) Title() string {
	return s.book.Title
}

// HandlesEsc keeps the router from popping the screen mid-quiz; Esc
// raises the quit confirmation instead.
func (s *QuizScreen) HandlesEsc() bool {
	return s.errMsg == "" && s.session != nil && s.session.Phase() != sess.PhaseComplete
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.session != nil && s.session.Phase() == sess.PhaseAnswered {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.session == nil {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.session.Phase() == sess.PhaseAnswered {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.session = msg.Session
		if s.session.Phase() == sess.PhaseComplete {
			// Nothing to ask: go straight to the results screen.
			return s, s.finishQuiz()
		}
		return s, nil

	case answerRecordedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case summaryReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: results.New(msg.Summary)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.session != nil && s.session.Phase() == sess.PhasePresenting && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.session == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	// Feedback overlay: any key moves on.
	if s.session.Phase() == sess.PhaseAnswered {
		if s.session.Continue() {
			s.input = newAnswerInput()
			return s, s.input.Init()
		}
		return s, s.finishQuiz()
	}

	if s.session.Phase() == sess.PhasePresenting {
		switch key {
		case "esc":
			s.showingQuitConfirm = true
			return s, nil
		case "enter":
			return s.submitAnswer()
		}

		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// submitAnswer grades the typed answer and appends it to the attempt
// log. A blank submit on a question that requires a word is ignored.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	q := s.session.Current()
	if q == nil {
		return s, nil
	}

	correct, ok := s.session.Submit(s.input.Value())
	if !ok {
		return s, nil
	}
	s.input.Submit(correct)

	sessionID := s.session.ID
	return s, func() tea.Msg {
		err := s.statsSvc.RecordAnswer(context.Background(), sessionID, q.ID, q.Section, correct)
		return answerRecordedMsg{Err: err}
	}
}

// startQuiz snapshots section stats and generates the quiz.
func (s *QuizScreen) startQuiz() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		before, err := s.statsSvc.SectionStats(ctx)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		questions, err := s.generator.GenerateQuiz(ctx, s.book.AllQuestions(), sess.DefaultSize)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		return quizReadyMsg{Session: sess.NewSession(s.book, questions, before)}
	}
}

// finishQuiz takes a fresh stats snapshot and builds the summary.
func (s *QuizScreen) finishQuiz() tea.Cmd {
	session := s.session
	return func() tea.Msg {
		after, err := s.statsSvc.SectionStats(context.Background())
		if err != nil {
			return summaryReadyMsg{Err: err}
		}
		return summaryReadyMsg{Summary: sess.BuildSummary(session, after)}
	}
}

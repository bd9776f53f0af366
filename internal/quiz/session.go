package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/gramiz/internal/answer"
	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/stats"
)

// DefaultSize is the number of questions in a standard quiz.
const DefaultSize = 10

// Phase is the state of a quiz session. Transitions only move forward:
// Presenting -> Answered via Submit, Answered -> Presenting (next) or
// Complete via Continue.
type Phase int

const (
	PhasePresenting Phase = iota
	PhaseAnswered
	PhaseComplete
)

// Session tracks one run through a generated quiz. It is purely
// in-memory; persistence happens through the stats write path as each
// answer is submitted, and the session itself is discarded afterwards.
type Session struct {
	ID        string
	Book      *catalog.Book
	Questions []catalog.Question
	StartTime time.Time

	// StartStats is the section accuracy snapshot captured before the
	// first answer, compared against a fresh snapshot on the results
	// screen.
	StartStats []stats.SectionStat

	index       int
	score       int
	phase       Phase
	lastCorrect bool
}

// NewSession creates a session over the given questions. An empty quiz
// is immediately complete.
func NewSession(book *catalog.Book, questions []catalog.Question, startStats []stats.SectionStat) *Session {
	s := &Session{
		ID:         uuid.New().String(),
		Book:       book,
		Questions:  questions,
		StartTime:  time.Now(),
		StartStats: startStats,
	}
	if len(questions) == 0 {
		s.phase = PhaseComplete
	}
	return s
}

// Current returns the question being presented or answered, nil once
// the session is complete.
func (s *Session) Current() *catalog.Question {
	if s.index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.index]
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	return s.score
}

// LastCorrect reports whether the most recently submitted answer was
// accepted. Only meaningful in PhaseAnswered.
func (s *Session) LastCorrect() bool {
	return s.lastCorrect
}

// Position returns the 1-based number of the current question and the
// quiz length.
func (s *Session) Position() (int, int) {
	n := s.index + 1
	if n > len(s.Questions) {
		n = len(s.Questions)
	}
	return n, len(s.Questions)
}

// Progress returns completion in [0,1], counting answered questions.
func (s *Session) Progress() float64 {
	if len(s.Questions) == 0 {
		return 1
	}
	answered := s.index
	if s.phase != PhasePresenting {
		answered++
	}
	if answered > len(s.Questions) {
		answered = len(s.Questions)
	}
	return float64(answered) / float64(len(s.Questions))
}

// Submit grades the input against the current question. It returns
// (correct, ok); ok is false when the submission was ignored: wrong
// phase, or empty input on a question that requires a word. A question
// cannot be re-answered once graded.
func (s *Session) Submit(input string) (correct, ok bool) {
	if s.phase != PhasePresenting {
		return false, false
	}
	q := s.Current()
	if q == nil {
		return false, false
	}

	if isBlank(input) && !answer.AllowsEmpty(q.Correct) {
		return false, false
	}

	correct = answer.Validate(input, q.Correct)
	s.lastCorrect = correct
	if correct {
		s.score++
	}
	s.phase = PhaseAnswered
	return correct, true
}

// Continue moves from Answered to the next question, or to Complete
// after the last one. It reports whether the session is still running.
func (s *Session) Continue() bool {
	if s.phase != PhaseAnswered {
		return s.phase == PhasePresenting
	}
	s.index++
	if s.index >= len(s.Questions) {
		s.phase = PhaseComplete
		return false
	}
	s.phase = PhasePresenting
	return true
}

func isBlank(input string) bool {
	for _, r := range input {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

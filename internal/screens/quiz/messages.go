package quiz

import (
	sess "github.com/abhisek/gramiz/internal/quiz"
)

// quizReadyMsg is sent when quiz generation and the pre-quiz stats
// snapshot are complete.
type quizReadyMsg struct {
	Session *sess.Session
	Err     error
}

// answerRecordedMsg is sent after an attempt has been appended to the log.
type answerRecordedMsg struct {
	Err error
}

// summaryReadyMsg is sent when the post-quiz stats snapshot has been
// fetched and the summary built.
type summaryReadyMsg struct {
	Summary *sess.Summary
	Err     error
}

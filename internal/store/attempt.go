package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/gramiz/ent"
	"github.com/abhisek/gramiz/ent/attempt"
)

// AttemptRecord is a read view of one logged answer submission.
type AttemptRecord struct {
	ID         int
	SessionID  string
	QuestionID string
	Section    string
	Correct    bool
	Timestamp  time.Time
}

// AttemptRepo provides append and query access to the attempt log.
// Appends are atomic single-row inserts; nothing here updates a row.
type AttemptRepo interface {
	// Append records one answer submission under its quiz session and
	// returns its id.
	Append(ctx context.Context, sessionID, questionID, section string, correct bool, at time.Time) (int, error)

	// CountBySection returns the number of attempts for a section,
	// optionally restricted to correct ones. Both counts are served by
	// the (section, correct) index.
	CountBySection(ctx context.Context, section string) (int, error)
	CountCorrectBySection(ctx context.Context, section string) (int, error)

	// CountAll and CountCorrect are the unscoped variants.
	CountAll(ctx context.Context) (int, error)
	CountCorrect(ctx context.Context) (int, error)

	// RecentBySection returns up to limit attempts for a section,
	// newest first.
	RecentBySection(ctx context.Context, section string, limit int) ([]AttemptRecord, error)

	// Since returns all attempts with timestamp >= t, any section.
	Since(ctx context.Context, t time.Time) ([]AttemptRecord, error)

	// CorrectQuestionIDs returns the distinct question ids that have at
	// least one correct attempt.
	CorrectQuestionIDs(ctx context.Context) ([]string, error)

	// Reset deletes every attempt. Used by the reset command and tests.
	Reset(ctx context.Context) (int, error)
}

type attemptRepo struct {
	client *ent.Client
}

func (r *attemptRepo) Append(ctx context.Context, sessionID, questionID, section string, correct bool, at time.Time) (int, error) {
	a, err := r.client.Attempt.Create().
		SetSessionID(sessionID).
		SetQuestionID(questionID).
		SetSection(section).
		SetCorrect(correct).
		SetTimestamp(at).
		Save(ctx)
	if err != nil {
		return 0, fmt.Errorf("append attempt: %w", err)
	}
	return a.ID, nil
}

func (r *attemptRepo) CountBySection(ctx context.Context, section string) (int, error) {
	n, err := r.client.Attempt.Query().
		Where(attempt.Section(section)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count attempts for %s: %w", section, err)
	}
	return n, nil
}

func (r *attemptRepo) CountCorrectBySection(ctx context.Context, section string) (int, error) {
	n, err := r.client.Attempt.Query().
		Where(attempt.Section(section), attempt.Correct(true)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count correct attempts for %s: %w", section, err)
	}
	return n, nil
}

func (r *attemptRepo) CountAll(ctx context.Context) (int, error) {
	n, err := r.client.Attempt.Query().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

func (r *attemptRepo) CountCorrect(ctx context.Context) (int, error) {
	n, err := r.client.Attempt.Query().
		Where(attempt.Correct(true)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count correct attempts: %w", err)
	}
	return n, nil
}

func (r *attemptRepo) RecentBySection(ctx context.Context, section string, limit int) ([]AttemptRecord, error) {
	rows, err := r.client.Attempt.Query().
		Where(attempt.Section(section)).
		Order(ent.Desc(attempt.FieldTimestamp), ent.Desc(attempt.FieldID)).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent attempts for %s: %w", section, err)
	}
	return toRecords(rows), nil
}

func (r *attemptRepo) Since(ctx context.Context, t time.Time) ([]AttemptRecord, error) {
	rows, err := r.client.Attempt.Query().
		Where(attempt.TimestampGTE(t)).
		Order(ent.Asc(attempt.FieldTimestamp)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts since %s: %w", t.Format(time.RFC3339), err)
	}
	return toRecords(rows), nil
}

func (r *attemptRepo) CorrectQuestionIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.Attempt.Query().
		Where(attempt.Correct(true)).
		Unique(true).
		Select(attempt.FieldQuestionID).
		Strings(ctx)
	if err != nil {
		return nil, fmt.Errorf("query mastered question ids: %w", err)
	}
	return ids, nil
}

func (r *attemptRepo) Reset(ctx context.Context) (int, error) {
	n, err := r.client.Attempt.Delete().Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset attempts: %w", err)
	}
	return n, nil
}

func toRecords(rows []*ent.Attempt) []AttemptRecord {
	out := make([]AttemptRecord, len(rows))
	for i, a := range rows {
		out[i] = AttemptRecord{
			ID:         a.ID,
			SessionID:  a.SessionID,
			QuestionID: a.QuestionID,
			Section:    a.Section,
			Correct:    a.Correct,
			Timestamp:  a.Timestamp,
		}
	}
	return out
}

var _ AttemptRepo = (*attemptRepo)(nil)

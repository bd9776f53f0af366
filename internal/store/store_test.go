package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAttempt(t *testing.T, repo AttemptRepo, questionID, section string, correct bool, at time.Time) int {
	t.Helper()
	id, err := repo.Append(context.Background(), "seed-session", questionID, section, correct, at)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	return id
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only checked with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	now := time.Now().UTC()

	first := seedAttempt(t, repo, "q1", "verbs", true, now)
	second := seedAttempt(t, repo, "q2", "verbs", false, now)

	if second <= first {
		t.Errorf("ids not increasing: first=%d second=%d", first, second)
	}
}

func TestAppendStampsSessionID(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := repo.Append(ctx, "sess-a", "q1", "verbs", true, now); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := repo.Append(ctx, "sess-b", "q2", "verbs", false, now.Add(time.Second)); err != nil {
		t.Fatalf("append: %v", err)
	}

	recent, err := repo.RecentBySection(ctx, "verbs", 2)
	if err != nil {
		t.Fatalf("recent by section: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].SessionID != "sess-b" || recent[1].SessionID != "sess-a" {
		t.Errorf("session ids = %q,%q want sess-b,sess-a", recent[0].SessionID, recent[1].SessionID)
	}
}

func TestSectionCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	now := time.Now().UTC()

	seedAttempt(t, repo, "q1", "verbs", true, now)
	seedAttempt(t, repo, "q2", "verbs", false, now)
	seedAttempt(t, repo, "q3", "verbs", true, now)
	seedAttempt(t, repo, "q4", "articles", false, now)

	total, err := repo.CountBySection(ctx, "verbs")
	if err != nil {
		t.Fatalf("count by section: %v", err)
	}
	if total != 3 {
		t.Errorf("verbs total = %d, want 3", total)
	}

	correct, err := repo.CountCorrectBySection(ctx, "verbs")
	if err != nil {
		t.Fatalf("count correct by section: %v", err)
	}
	if correct != 2 {
		t.Errorf("verbs correct = %d, want 2", correct)
	}

	all, err := repo.CountAll(ctx)
	if err != nil {
		t.Fatalf("count all: %v", err)
	}
	if all != 4 {
		t.Errorf("total = %d, want 4", all)
	}

	allCorrect, err := repo.CountCorrect(ctx)
	if err != nil {
		t.Fatalf("count correct: %v", err)
	}
	if allCorrect != 2 {
		t.Errorf("correct = %d, want 2", allCorrect)
	}
}

func TestRecentBySectionNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		seedAttempt(t, repo, "q", "prepositions", i%2 == 0, base.Add(time.Duration(i)*time.Minute))
	}
	seedAttempt(t, repo, "other", "verbs", true, base.Add(time.Hour))

	recent, err := repo.RecentBySection(ctx, "prepositions", 3)
	if err != nil {
		t.Fatalf("recent by section: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Timestamp.After(recent[i-1].Timestamp) {
			t.Errorf("result not newest-first at index %d", i)
		}
	}
	if !recent[0].Timestamp.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("newest = %v, want %v", recent[0].Timestamp, base.Add(4*time.Minute))
	}
}

func TestSinceLowerBound(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	seedAttempt(t, repo, "old", "verbs", true, base.Add(-48*time.Hour))
	seedAttempt(t, repo, "mid", "articles", false, base.Add(-12*time.Hour))
	seedAttempt(t, repo, "new", "verbs", true, base)

	got, err := repo.Since(ctx, base.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("since: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].QuestionID != "mid" || got[1].QuestionID != "new" {
		t.Errorf("got %q,%q want mid,new", got[0].QuestionID, got[1].QuestionID)
	}
}

func TestCorrectQuestionIDsDistinct(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	now := time.Now().UTC()

	seedAttempt(t, repo, "q1", "verbs", true, now)
	seedAttempt(t, repo, "q1", "verbs", true, now) // second correct, same question
	seedAttempt(t, repo, "q2", "verbs", false, now)
	seedAttempt(t, repo, "q3", "articles", true, now)

	ids, err := repo.CorrectQuestionIDs(ctx)
	if err != nil {
		t.Fatalf("correct question ids: %v", err)
	}
	got := make(map[string]bool, len(ids))
	for _, id := range ids {
		if got[id] {
			t.Errorf("duplicate id %q in result", id)
		}
		got[id] = true
	}
	if len(got) != 2 || !got["q1"] || !got["q3"] {
		t.Errorf("ids = %v, want {q1,q3}", ids)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.Attempts()
	ctx := context.Background()
	now := time.Now().UTC()

	seedAttempt(t, repo, "q1", "verbs", true, now)
	seedAttempt(t, repo, "q2", "articles", false, now)

	deleted, err := repo.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	n, err := repo.CountAll(ctx)
	if err != nil {
		t.Fatalf("count after reset: %v", err)
	}
	if n != 0 {
		t.Errorf("count after reset = %d, want 0", n)
	}
}
